package usecase

import (
	"context"
	"fmt"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/cache"
	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
)

// EntityUseCase 事件/实体元数据业务逻辑
type EntityUseCase struct {
	incidents repo.IncidentRepo
	entities  repo.EntityRepo
	cache     *cache.Cache
	log       *log.Helper
}

// NewEntityUseCase 创建事件/实体业务逻辑实例
func NewEntityUseCase(incidents repo.IncidentRepo, entities repo.EntityRepo, qc *cache.Cache, logger log.Logger) *EntityUseCase {
	return &EntityUseCase{incidents: incidents, entities: entities, cache: qc, log: log.NewHelper(logger)}
}

// ListIncidents 列出全部事件
func (uc *EntityUseCase) ListIncidents(ctx context.Context) ([]*domain.Incident, error) {
	return uc.incidents.ListIncidents(ctx)
}

// CreateIncident 创建事件
func (uc *EntityUseCase) CreateIncident(ctx context.Context, in *domain.Incident) error {
	if in.Name == "" {
		return kerrors.BadRequest("INVALID_INCIDENT", "name is required")
	}
	if in.Status == "" {
		in.Status = "ACTIVE"
	}
	if err := uc.incidents.CreateIncident(ctx, in); err != nil {
		return err
	}
	uc.cache.Invalidate(cache.Key{IncidentID: "all", EntityID: "all", View: "incidents"})
	return nil
}

// ListEntities 列出事件下的实体
func (uc *EntityUseCase) ListEntities(ctx context.Context, incidentID uuid.UUID) ([]*domain.Entity, error) {
	return uc.entities.ListByIncident(ctx, incidentID)
}

// CreateEntity 创建实体
func (uc *EntityUseCase) CreateEntity(ctx context.Context, e *domain.Entity) error {
	if e.Name == "" {
		return kerrors.BadRequest("INVALID_ENTITY", "name is required")
	}
	if !e.Kind.Valid() {
		return kerrors.BadRequest("INVALID_ENTITY", fmt.Sprintf("unknown entity kind: %q", e.Kind))
	}
	if _, err := uc.incidents.GetIncident(ctx, e.IncidentID); err != nil {
		return err
	}
	if err := uc.entities.CreateEntity(ctx, e); err != nil {
		return err
	}
	uc.cache.InvalidateIncident(e.IncidentID.String())
	return nil
}
