package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork: a requisição não chegou a ter resposta.
	ErrNetwork = errors.New("network failure")

	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// APIError: o backend respondeu com status fora de 2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// NetworkError embrulha falhas de transporte (conexão recusada, DNS, contexto cancelado).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
