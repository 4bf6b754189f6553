package service

import "errors"

var (
	// ErrNameRequired — parâmetro name ausente ou só espaços.
	ErrNameRequired = errors.New("missing name parameter")

	// ErrNoMatches — nenhuma empresa corresponde ao filtro de busca.
	ErrNoMatches = errors.New("no companies found")
)
