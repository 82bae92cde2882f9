package dto

import "time"

// RegisterRequest alta por email/password. El email debe estar aprobado en el
// allowlist.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest credenciales de login por password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ExternalLoginRequest identidad ya verificada por el proveedor externo
// (el intercambio OAuth ocurre fuera de este servicio).
type ExternalLoginRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// ChangePasswordRequest cambio de password del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse proyección pública de un usuario.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginResponse token emitido más el usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
