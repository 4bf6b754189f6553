package bitrix

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCall_UnwrapsResult(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		w.Write([]byte(`{"result": {"ID": {"type": "integer"}}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL + "/")
	result, err := c.Call("crm.company.fields", map[string]any{"ID": "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/crm.company.fields.json" {
		t.Errorf("expected path /crm.company.fields.json, got %s", gotPath)
	}
	if gotBody["ID"] != "7" {
		t.Errorf("expected params to carry ID=7, got %v", gotBody)
	}

	fields, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", result)
	}
	if _, ok := fields["ID"]; !ok {
		t.Errorf("expected ID field in result, got %v", fields)
	}
}

func TestCall_NilParamsSendsEmptyObject(t *testing.T) {
	var gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"result": []}`))
	}))
	defer server.Close()

	c := NewClient(server.URL + "/")
	if _, err := c.Call("crm.type.list", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody != "{}" {
		t.Errorf("expected empty JSON object body, got %q", gotBody)
	}
}

func TestCallRaw_ReturnsCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": [{"FIELD_NAME": "UF_CRM_1"}], "next": 50, "total": 120}`))
	}))
	defer server.Close()

	c := NewClient(server.URL + "/")
	env, err := c.CallRaw("crm.company.userfield.list", map[string]any{"start": 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Next == nil || *env.Next != 50 {
		t.Errorf("expected next=50, got %v", env.Next)
	}
	if env.Total == nil || *env.Total != 120 {
		t.Errorf("expected total=120, got %v", env.Total)
	}
}

func TestCallRaw_NoCursorMeansNilNext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": []}`))
	}))
	defer server.Close()

	c := NewClient(server.URL + "/")
	env, err := c.CallRaw("crm.company.userfield.list", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Next != nil {
		t.Errorf("expected nil next, got %d", *env.Next)
	}
}

func TestCallRaw_EnvelopeError(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantMessage string
	}{
		{
			name:        "with description",
			response:    `{"error": "INVALID_TOKEN", "error_description": "Token invalid"}`,
			wantMessage: "Token invalid",
		},
		{
			name:        "falls back to error code",
			response:    `{"error": "INVALID_TOKEN"}`,
			wantMessage: "INVALID_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// o Bitrix devolve 200 mesmo com erro no envelope
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			c := NewClient(server.URL + "/")
			_, err := c.Call("crm.company.list", nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var upstream *UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("expected UpstreamError, got %T", err)
			}
			if upstream.Error() != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, upstream.Error())
			}
		})
	}
}

func TestCallRaw_WebhookBaseNotSet(t *testing.T) {
	c := NewClient("")
	_, err := c.CallRaw("crm.company.list", nil)
	if !errors.Is(err, ErrWebhookBaseNotSet) {
		t.Errorf("expected ErrWebhookBaseNotSet, got %v", err)
	}
}

func TestCallRaw_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := NewClient(server.URL + "/")
	if _, err := c.CallRaw("crm.company.list", nil); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}
