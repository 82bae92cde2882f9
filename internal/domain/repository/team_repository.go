package repository

import (
	"context"

	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// TeamRepository persiste equipos y sus centros de costo.
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	Update(ctx context.Context, team *entity.Team) error
	// Delete elimina el equipo; las asignaciones de rol acotadas caen por
	// cascade en el almacén.
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*entity.Team, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]*entity.Team, error)
	SetDefaultCostCenter(ctx context.Context, teamID, costCenterID string) error

	CreateCostCenter(ctx context.Context, cc *entity.CostCenter) error
	GetCostCenter(ctx context.Context, id string) (*entity.CostCenter, error)
	UpdateCostCenter(ctx context.Context, cc *entity.CostCenter) error
	ListCostCenters(ctx context.Context, teamID string) ([]*entity.CostCenter, error)
}
