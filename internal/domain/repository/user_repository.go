package repository

import (
	"context"

	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP). Los Get*
// devuelven (nil, nil) cuando la fila no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}
