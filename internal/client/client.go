package client

import "github.com/TWRT/bitrix-proxy/internal/client/bitrix"

type Caller interface {
	Call(method string, params map[string]any) (any, error)
}

type RawCaller interface {
	Caller
	CallRaw(method string, params map[string]any) (*bitrix.Envelope, error)
}
