package models

type CompanyResult struct {
	Company  CompanyRecord   `json:"company"`
	Contacts []ContactRecord `json:"contacts"`
}

type CompanyRecord struct {
	Id       string    `json:"id"`
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	Industry string    `json:"industry"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Website  string    `json:"website"`
	Address  string    `json:"address"`
	Legal    LegalInfo `json:"legal"`
}

type LegalInfo struct {
	LegalName string `json:"legalName"`
	VatNumber string `json:"vatNumber"`
}

type ContactRecord struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}
