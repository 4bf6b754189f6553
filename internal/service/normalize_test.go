package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TWRT/bitrix-proxy/internal/models"
)

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		raw    map[string]any
		source string
		want   models.FieldDescriptor
	}{
		{
			name: "native convention",
			code: "TITLE",
			raw: map[string]any{
				"title":      "Nome da empresa",
				"type":       "string",
				"isRequired": true,
				"isMultiple": false,
			},
			source: models.SourceNative,
			want: models.FieldDescriptor{
				Code:      "TITLE",
				Title:     "Nome da empresa",
				Type:      "string",
				Mandatory: true,
				Source:    models.SourceNative,
			},
		},
		{
			name: "user field convention",
			code: "UF_CRM_SEGMENT",
			raw: map[string]any{
				"FIELD_NAME":        "UF_CRM_SEGMENT",
				"USER_TYPE_ID":      "enumeration",
				"MULTIPLE":          "Y",
				"MANDATORY":         "N",
				"EDIT_FORM_LABEL":   "Segmento",
				"LIST_COLUMN_LABEL": "Seg.",
			},
			source: models.SourceUserDefined,
			want: models.FieldDescriptor{
				Code:     "UF_CRM_SEGMENT",
				Title:    "Segmento",
				Type:     "enumeration",
				Multiple: true,
				Source:   models.SourceUserDefined,
			},
		},
		{
			name: "camelCase user field convention",
			code: "UF_CRM_2_SCORE",
			raw: map[string]any{
				"fieldName":     "UF_CRM_2_SCORE",
				"userTypeId":    "double",
				"mandatory":     "Y",
				"editFormLabel": "Score",
			},
			source: models.SourceUserDefined,
			want: models.FieldDescriptor{
				Code:      "UF_CRM_2_SCORE",
				Title:     "Score",
				Type:      "double",
				Mandatory: true,
				Source:    models.SourceUserDefined,
			},
		},
		{
			name:   "title falls back to code",
			code:   "UF_CRM_X",
			raw:    map[string]any{"USER_TYPE_ID": "string"},
			source: models.SourceUserDefined,
			want: models.FieldDescriptor{
				Code:   "UF_CRM_X",
				Title:  "UF_CRM_X",
				Type:   "string",
				Source: models.SourceUserDefined,
			},
		},
		{
			name:   "empty code flows through",
			code:   "",
			raw:    map[string]any{"USER_TYPE_ID": "string"},
			source: models.SourceUserDefined,
			want: models.FieldDescriptor{
				Type:   "string",
				Source: models.SourceUserDefined,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeField(tt.code, tt.raw, tt.source)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("normalizeField mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttachOptions(t *testing.T) {
	base := models.FieldDescriptor{Code: "UF_CRM_PRIORITY"}

	t.Run("two entries in source order", func(t *testing.T) {
		raw := map[string]any{
			"LIST": []any{
				map[string]any{"ID": "1", "VALUE": "Low"},
				map[string]any{"ID": "2", "VALUE": "High"},
			},
		}
		got := attachOptions(base, raw)
		if got.Options != "1:Low | 2:High" {
			t.Errorf("expected %q, got %q", "1:Low | 2:High", got.Options)
		}
	})

	t.Run("numeric ids from camelCase items", func(t *testing.T) {
		raw := map[string]any{
			"items": []any{
				map[string]any{"id": float64(10), "value": "Ouro"},
			},
		}
		got := attachOptions(base, raw)
		if got.Options != "10:Ouro" {
			t.Errorf("expected %q, got %q", "10:Ouro", got.Options)
		}
	})

	t.Run("id falls back to value", func(t *testing.T) {
		raw := map[string]any{
			"LIST": []any{
				map[string]any{"VALUE": "Prata"},
			},
		}
		got := attachOptions(base, raw)
		if got.Options != "Prata:Prata" {
			t.Errorf("expected %q, got %q", "Prata:Prata", got.Options)
		}
	})

	t.Run("idempotent without list", func(t *testing.T) {
		got := attachOptions(base, map[string]any{"USER_TYPE_ID": "string"})
		if got.Options != "" {
			t.Errorf("expected empty options, got %q", got.Options)
		}
		got = attachOptions(got, map[string]any{"LIST": []any{}})
		if got.Options != "" {
			t.Errorf("expected empty options after empty list, got %q", got.Options)
		}
	})
}

func TestUserFieldCode(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"prefers FIELD_NAME", map[string]any{"FIELD_NAME": "UF_A", "FIELD": "UF_B"}, "UF_A"},
		{"camelCase fieldName", map[string]any{"fieldName": "UF_C"}, "UF_C"},
		{"falls back to field", map[string]any{"field": "UF_D"}, "UF_D"},
		{"missing code is empty", map[string]any{"USER_TYPE_ID": "string"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userFieldCode(tt.raw); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAsString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"abc", "abc"},
		{float64(42), "42"},
		{float64(1.5), "1.5"},
		{7, "7"},
		{nil, ""},
		{true, ""},
	}

	for _, tt := range tests {
		if got := asString(tt.in); got != tt.want {
			t.Errorf("asString(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
