package bitrix

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrWebhookBaseNotSet = errors.New("bitrix webhook base is not configured")

// UpstreamError representa um envelope com o campo error preenchido, o que o
// Bitrix usa para sinalizar falha independente do status HTTP.
type UpstreamError struct {
	Code        string
	Description string
}

func (e *UpstreamError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}

type Client struct {
	webhookBase string
	httpClient  *http.Client
}

// NewClient cria um cliente para um inbound webhook. A base deve terminar
// em "/" (formato https://portal.bitrix24.com/rest/<user>/<token>/).
func NewClient(webhookBase string) *Client {
	return &Client{
		webhookBase: webhookBase,
		httpClient:  &http.Client{},
	}
}

// Call executa um método e devolve somente o campo result do envelope.
func (c *Client) Call(method string, params map[string]any) (any, error) {
	env, err := c.CallRaw(method, params)
	if err != nil {
		return nil, err
	}
	return env.Result, nil
}

// CallRaw executa um método e devolve o envelope completo, necessário para
// ler o cursor de paginação. Uma única tentativa, sem retry nem timeout.
func (c *Client) CallRaw(method string, params map[string]any) (*Envelope, error) {
	if c.webhookBase == "" {
		return nil, ErrWebhookBaseNotSet
	}
	if params == nil {
		params = map[string]any{}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params (%s): %w", method, err)
	}

	req, err := http.NewRequest("POST", c.webhookBase+method+".json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build request (%s): %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body (%s): %w", method, err)
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("parse response (%s): %w", method, err)
	}

	if env.Error != "" {
		return nil, &UpstreamError{Code: env.Error, Description: env.ErrorDescription}
	}

	return &env, nil
}
