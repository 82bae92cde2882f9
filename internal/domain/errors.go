package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce a
// códigos de estado; el núcleo nunca loguea ni reintenta.
var (
	ErrUnauthenticated = errors.New("autenticación requerida")
	ErrForbidden       = errors.New("acceso denegado")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrValidation      = errors.New("entrada inválida")

	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrNotAllowlisted     = errors.New("el email no está aprobado en el allowlist")
)
