package team

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	RunTeams(ctx context.Context, fn func(
		teams repository.TeamRepository,
		roles repository.RoleRepository,
	) error) error
}

// TeamUseCase gestión de equipos y centros de costo.
type TeamUseCase struct {
	teams repository.TeamRepository
	users repository.UserRepository
	tx    TxRunner
}

// NewTeamUseCase construye el caso de uso de equipos.
func NewTeamUseCase(teams repository.TeamRepository, users repository.UserRepository, tx TxRunner) *TeamUseCase {
	return &TeamUseCase{teams: teams, users: users, tx: tx}
}

// CreateTeam crea el equipo y otorga MANAGER (acotado al equipo) a su dueño
// en una sola transacción: ambas cosas o ninguna.
func (uc *TeamUseCase) CreateTeam(ctx context.Context, in dto.CreateTeamRequest) (*entity.Team, error) {
	if in.Name == "" || in.OwnerUserID == "" {
		return nil, fmt.Errorf("%w: name y owner_user_id son requeridos", domain.ErrValidation)
	}
	owner, err := uc.users.GetByID(ctx, in.OwnerUserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: dueño %s", domain.ErrUserNotFound, in.OwnerUserID)
	}

	team := &entity.Team{
		ID:                  uuid.New().String(),
		Name:                in.Name,
		OwnerUserID:         in.OwnerUserID,
		CostCenterDefaultID: in.CostCenterDefaultID,
		CreatedAt:           time.Now(),
	}
	err = uc.tx.RunTeams(ctx, func(teams repository.TeamRepository, roles repository.RoleRepository) error {
		if err := teams.Create(ctx, team); err != nil {
			return err
		}
		return roles.Assign(ctx, team.OwnerUserID, entity.RoleManager, &team.ID)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeam devuelve el equipo con sus centros de costo.
func (uc *TeamUseCase) GetTeam(ctx context.Context, teamID string) (*dto.TeamDetailResponse, error) {
	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	centers, err := uc.teams.ListCostCenters(ctx, teamID)
	if err != nil {
		return nil, err
	}
	out := &dto.TeamDetailResponse{TeamResponse: toTeamResponse(team)}
	out.CostCenters = make([]dto.CostCenterResponse, 0, len(centers))
	for _, cc := range centers {
		out.CostCenters = append(out.CostCenters, toCostCenterResponse(cc))
	}
	return out, nil
}

// ListTeams lista todos los equipos (vista admin).
func (uc *TeamUseCase) ListTeams(ctx context.Context) ([]dto.TeamResponse, error) {
	teams, err := uc.teams.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}
	return out, nil
}

// UpdateTeam aplica cambios parciales.
func (uc *TeamUseCase) UpdateTeam(ctx context.Context, teamID string, in dto.UpdateTeamRequest) (*entity.Team, error) {
	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede ser vacío", domain.ErrValidation)
		}
		team.Name = *in.Name
	}
	if in.OwnerUserID != nil {
		team.OwnerUserID = *in.OwnerUserID
	}
	if in.CostCenterDefaultID != nil {
		team.CostCenterDefaultID = in.CostCenterDefaultID
	}
	if err := uc.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteTeam elimina el equipo. Las asignaciones de rol acotadas al equipo
// caen por cascade en el almacén, dentro de la misma transacción implícita
// del DELETE.
func (uc *TeamUseCase) DeleteTeam(ctx context.Context, teamID string) error {
	return uc.teams.Delete(ctx, teamID)
}

// CreateCostCenter alta de centro de costo; el código es único por equipo
// (violación → ErrConflict desde el repo).
func (uc *TeamUseCase) CreateCostCenter(ctx context.Context, teamID string, in dto.CreateCostCenterRequest) (*entity.CostCenter, error) {
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: code y name son requeridos", domain.ErrValidation)
	}
	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	cc := &entity.CostCenter{
		ID:     uuid.New().String(),
		TeamID: teamID,
		Code:   in.Code,
		Name:   in.Name,
		Active: active,
	}
	if err := uc.teams.CreateCostCenter(ctx, cc); err != nil {
		return nil, err
	}
	return cc, nil
}

// UpdateCostCenter aplica cambios parciales a un centro de costo.
func (uc *TeamUseCase) UpdateCostCenter(ctx context.Context, costCenterID string, in dto.UpdateCostCenterRequest) (*entity.CostCenter, error) {
	cc, err := uc.teams.GetCostCenter(ctx, costCenterID)
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		cc.Code = *in.Code
	}
	if in.Name != nil {
		cc.Name = *in.Name
	}
	if in.Active != nil {
		cc.Active = *in.Active
	}
	if err := uc.teams.UpdateCostCenter(ctx, cc); err != nil {
		return nil, err
	}
	return cc, nil
}

// ListCostCenters centros de costo de un equipo, ordenados por código.
func (uc *TeamUseCase) ListCostCenters(ctx context.Context, teamID string) ([]*entity.CostCenter, error) {
	return uc.teams.ListCostCenters(ctx, teamID)
}

// SetDefaultCostCenter fija el centro de costo por defecto; debe pertenecer
// al equipo.
func (uc *TeamUseCase) SetDefaultCostCenter(ctx context.Context, teamID, costCenterID string) error {
	cc, err := uc.teams.GetCostCenter(ctx, costCenterID)
	if err != nil {
		return err
	}
	if cc == nil || cc.TeamID != teamID {
		return fmt.Errorf("%w: el centro de costo no pertenece al equipo", domain.ErrValidation)
	}
	return uc.teams.SetDefaultCostCenter(ctx, teamID, costCenterID)
}

func toTeamResponse(t *entity.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:                  t.ID,
		Name:                t.Name,
		OwnerUserID:         t.OwnerUserID,
		CostCenterDefaultID: t.CostCenterDefaultID,
		CreatedAt:           t.CreatedAt,
	}
}

func toCostCenterResponse(cc *entity.CostCenter) dto.CostCenterResponse {
	return dto.CostCenterResponse{
		ID:     cc.ID,
		TeamID: cc.TeamID,
		Code:   cc.Code,
		Name:   cc.Name,
		Active: cc.Active,
	}
}
