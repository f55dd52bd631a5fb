package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los mensajes son los que ve el usuario del dashboard.
var (
	ErrNotFound            = errors.New("registro não encontrado")
	ErrInvalidInput        = errors.New("dados inválidos")
	ErrUnauthorized        = errors.New("Credenciais inválidas, tente novamente.")
	ErrSessionNotFound     = errors.New("sessão expirada ou inexistente")
	ErrInvalidDocumentType = errors.New("tipo de documento inválido")
	ErrInvalidValidity     = errors.New("validade do documento inválida")
	ErrInvalidStatus       = errors.New("status de documento inválido")
	ErrUploadIncomplete    = errors.New("Preencha o tipo de documento, a validade e anexe ao menos um arquivo.")
	ErrNoSelection         = errors.New("Por favor, selecione pelo menos um documento antes de prosseguir.")

	// Fallas del backend: siempre mensaje genérico.
	ErrUpstream = errors.New("Ocorreu um erro ao processar a solicitação.")
	ErrUpload   = errors.New("Ocorreu um erro ao enviar os documentos.")
)

// Upstream envuelve una falla del backend con el mensaje genérico,
// salvo credenciales vencidas y registros inexistentes que el usuario debe distinguir.
func Upstream(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
