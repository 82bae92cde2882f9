package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greengotts/greengotts-api/internal/application/auth"
	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// AuthHandler maneja registro, login y el gate de allowlist.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// CheckAllowlist godoc
// @Summary      Verificar si un email puede registrarse
// @Tags         auth
// @Produce      json
// @Param        email  query  string  true  "email a verificar"
// @Success      200    {object}  dto.AllowlistDecisionResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/auth/allowlist [get]
func (h *AuthHandler) CheckAllowlist(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return badRequest(c, "email es requerido")
	}
	normalized, err := entity.NormalizeEmail(email)
	if err != nil {
		return badRequest(c, "email inválido")
	}
	decision, err := h.uc.CheckAllowlist(c.Context(), normalized)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AllowlistDecisionResponse{
		Email:    normalized,
		Decision: string(decision),
	})
}

// Register godoc
// @Summary      Registrar usuario (requiere allowlist aprobado)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, display_name"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "email y password son requeridos")
	}
	if len(in.Password) < 8 {
		return badRequest(c, "password debe tener al menos 8 caracteres")
	}
	user, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión con email y password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "email y password son requeridos")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LoginExternal godoc
// @Summary      Iniciar sesión con identidad externa ya verificada
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExternalLoginRequest  true  "email, display_name"
// @Success      200   {object}  dto.LoginResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login/external [post]
func (h *AuthHandler) LoginExternal(c *fiber.Ctx) error {
	var in dto.ExternalLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" {
		return badRequest(c, "email es requerido")
	}
	out, err := h.uc.LoginExternal(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar password del usuario autenticado
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.ChangePasswordRequest  true  "current_password, new_password"
// @Success      204
// @Failure      401   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/auth/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.NewPassword) < 8 {
		return badRequest(c, "la nueva password debe tener al menos 8 caracteres")
	}
	if err := h.uc.ChangePassword(c.Context(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario autenticado actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Security     BearerAuth
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "se requiere autenticación"})
	}
	return c.JSON(dto.UserResponse{
		ID:          actor.ID,
		Email:       actor.Email,
		DisplayName: actor.DisplayName,
		Status:      actor.Status,
		CreatedAt:   actor.CreatedAt,
	})
}
