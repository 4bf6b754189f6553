package bitrix

// Envelope é a resposta padrão da REST API do Bitrix24. Métodos paginados
// devolvem um cursor em next; a ausência (null) encerra a paginação.
type Envelope struct {
	Result           any    `json:"result"`
	Next             *int   `json:"next,omitempty"`
	Total            *int   `json:"total,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}
