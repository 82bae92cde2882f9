package repository

import (
	"context"

	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// AllowlistFilters filtros opcionales para listar el allowlist.
type AllowlistFilters struct {
	Status    string
	InvitedBy string
}

// AllowlistRepository persiste entradas del allowlist, keyed por email ya
// normalizado (entity.NormalizeEmail). GetByEmail devuelve (nil, nil) si no
// existe entrada.
type AllowlistRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.AllowlistEntry, error)
	Create(ctx context.Context, entry *entity.AllowlistEntry) error
	UpdateStatus(ctx context.Context, email, status string) (*entity.AllowlistEntry, error)
	Delete(ctx context.Context, email string) error
	List(ctx context.Context, filters AllowlistFilters) ([]*entity.AllowlistEntry, error)
	PendingCount(ctx context.Context) (int, error)
}
