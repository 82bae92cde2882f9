package repository

import (
	"context"
	"time"

	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// ItemFilters filtros opcionales para listar ítems. Month filtra ítems cuyo
// rango [start_month, end_month] cubre el mes dado (end abierto incluye).
type ItemFilters struct {
	Type         string
	Status       string
	CostCenterID string
	Month        *time.Time
}

// BudgetRepository persiste presupuestos, secciones e ítems. Todos los
// listados excluyen ítems soft-deleted por defecto; un ítem actualizado jamás
// se elimina físicamente.
type BudgetRepository interface {
	Create(ctx context.Context, budget *entity.Budget) error
	GetByID(ctx context.Context, id string) (*entity.Budget, error)
	Update(ctx context.Context, budget *entity.Budget) error
	Delete(ctx context.Context, id string) error
	ListByTeam(ctx context.Context, teamID string) ([]*entity.Budget, error)

	CreateSection(ctx context.Context, section *entity.BudgetSection) error
	ListSections(ctx context.Context, budgetID string) ([]*entity.BudgetSection, error)
	UpdateSection(ctx context.Context, section *entity.BudgetSection) error
	DeleteSection(ctx context.Context, id string) error

	// CreateItem acepta un ítem con montos ya calculados; nunca recalcula.
	CreateItem(ctx context.Context, item *entity.BudgetItem) error
	GetItem(ctx context.Context, id string) (*entity.BudgetItem, error)
	ListItems(ctx context.Context, budgetID string, filters ItemFilters) ([]*entity.BudgetItem, error)
	UpdateItem(ctx context.Context, item *entity.BudgetItem) error
	SoftDeleteItem(ctx context.Context, id string, at time.Time) error
	RestoreItem(ctx context.Context, id string) error
}
