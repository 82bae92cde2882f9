package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa una cuenta del sistema. PasswordHash queda vacío para cuentas
// creadas vía identidad externa (Google); esas cuentas solo entran por ese camino.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede operar. Una cuenta inactiva se rechaza
// en toda decisión de autorización sin importar los roles que tenga.
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}
