package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio del panel.
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidLine          = errors.New("línea de venta inexistente")
	ErrBusy                 = errors.New("hay una operación en curso")
	ErrConfirmationRequired = errors.New("la operación requiere confirmación explícita")
	ErrEmptySale            = errors.New("la venta debe tener al menos un producto")
	ErrZeroTotal            = errors.New("el total de la venta no puede ser 0")
)

// ValidationError error detectado en el cliente antes de contactar al servidor.
// No produce llamadas de red ni avanza la época de refresco.
type ValidationError struct {
	Field  string
	Reason string
	Err    error // sentinel opcional (ej: ErrEmptySale)
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError el servidor de registros no respondió (red caída, timeout, cancelación).
type TransportError struct {
	Op  string // ej: "GET /productos"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: servidor de registros inaccesible: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError el servidor respondió con un estado distinto de 2xx.
// Message es el campo "message" del cuerpo cuando existe.
type ServerError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: el servidor respondió %d", e.Op, e.StatusCode)
}

// Is permite errors.Is(err, ErrNotFound) sobre respuestas 404.
func (e *ServerError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

// UserMessage devuelve el texto a mostrar al operador para cualquier error del panel.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "no se pudo conectar con el servidor de registros"
	}
	return err.Error()
}
