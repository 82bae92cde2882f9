package entity

import (
	"time"

	"golang.org/x/text/secure/precis"
)

// Estados de una entrada del allowlist.
const (
	AllowlistPending  = "pending"
	AllowlistApproved = "approved"
	AllowlistRevoked  = "revoked"
)

// AllowlistEntry pre-autoriza un email para crear cuenta. Es independiente de
// los roles: decide si una cuenta *nueva* puede existir, no qué puede hacer
// una cuenta existente.
type AllowlistEntry struct {
	Email     string
	Status    string // pending, approved, revoked
	InvitedBy *string
	InvitedAt time.Time
}

// AllowlistDecision es el resultado del gate de pre-registro. Solo
// DecisionApproved permite crear o activar una cuenta vía identidad externa.
type AllowlistDecision string

const (
	DecisionNotListed AllowlistDecision = "not_listed"
	DecisionPending   AllowlistDecision = "pending"
	DecisionApproved  AllowlistDecision = "approved"
	DecisionRevoked   AllowlistDecision = "revoked"
)

// DecisionForEntry mapea una entrada (o su ausencia) a la decisión del gate.
func DecisionForEntry(e *AllowlistEntry) AllowlistDecision {
	if e == nil {
		return DecisionNotListed
	}
	switch e.Status {
	case AllowlistApproved:
		return DecisionApproved
	case AllowlistRevoked:
		return DecisionRevoked
	}
	return DecisionPending
}

// NormalizeEmail canoniza un email para almacenamiento y búsqueda en el
// allowlist: minúsculas, ancho normalizado y NFC (perfil UsernameCaseMapped).
// Sin esto, "Foo@x.com" y "foo@x.com" serían filas distintas.
func NormalizeEmail(email string) (string, error) {
	return precis.UsernameCaseMapped.String(email)
}
