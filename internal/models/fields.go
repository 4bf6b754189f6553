package models

const (
	SourceNative      = "native"
	SourceUserDefined = "userDefined"
)

// FieldDescriptor é a forma canônica de um campo do CRM, seja nativo ou
// user field. Options fica vazio quando o campo não é enumerado.
type FieldDescriptor struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Multiple  bool   `json:"multiple"`
	Mandatory bool   `json:"mandatory"`
	Source    string `json:"source"`
	Options   string `json:"options"`
}

type SPAType struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Code  string `json:"code"`
}
