package service

import (
	"strconv"
	"strings"

	"github.com/TWRT/bitrix-proxy/internal/models"
)

// O Bitrix entrega metadados de campo em duas convenções: campos nativos usam
// chaves camelCase (title, isRequired) e user fields usam SNAKE_CASE
// maiúsculo (EDIT_FORM_LABEL, MANDATORY). Cada cadeia é percorrida em ordem e
// a primeira chave com valor vence.
var (
	titleKeys     = []string{"title", "editFormLabel", "EDIT_FORM_LABEL", "listLabel", "LIST_COLUMN_LABEL", "formLabel"}
	typeKeys      = []string{"type", "userTypeId", "USER_TYPE_ID"}
	multipleKeys  = []string{"isMultiple", "MULTIPLE", "multiple"}
	mandatoryKeys = []string{"isRequired", "MANDATORY", "mandatory"}
	optionKeys    = []string{"items", "LIST", "list", "enum"}
	fieldCodeKeys = []string{"FIELD_NAME", "fieldName", "FIELD", "field"}
)

func normalizeField(code string, raw map[string]any, source string) models.FieldDescriptor {
	title := firstString(raw, titleKeys...)
	if title == "" {
		title = code
	}
	return models.FieldDescriptor{
		Code:      code,
		Title:     title,
		Type:      firstString(raw, typeKeys...),
		Multiple:  flagSet(raw, multipleKeys...),
		Mandatory: flagSet(raw, mandatoryKeys...),
		Source:    source,
	}
}

// attachOptions serializa a lista de enumeração como "id:valor | id:valor".
// Campos sem lista ficam com Options vazio.
func attachOptions(d models.FieldDescriptor, raw map[string]any) models.FieldDescriptor {
	var list []any
	for _, key := range optionKeys {
		if v, ok := raw[key].([]any); ok && len(v) > 0 {
			list = v
			break
		}
	}
	if len(list) == 0 {
		return d
	}

	parts := make([]string, 0, len(list))
	for _, entry := range list {
		opt, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		value := firstString(opt, "VALUE", "value")
		id := firstString(opt, "ID", "id")
		if id == "" {
			id = value
		}
		parts = append(parts, id+":"+value)
	}
	d.Options = strings.Join(parts, " | ")
	return d
}

// userFieldCode deriva o código de um user field. Registros sem nenhuma das
// chaves produzem código vazio — defeito de dado do portal, não validamos.
func userFieldCode(raw map[string]any) string {
	return firstString(raw, fieldCodeKeys...)
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := asString(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

func flagSet(raw map[string]any, keys ...string) bool {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case bool:
			if v {
				return true
			}
		case string:
			if v == "Y" {
				return true
			}
		}
	}
	return false
}

// asString coage valores dinâmicos para string; IDs numéricos chegam como
// float64 depois do decode JSON.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}
