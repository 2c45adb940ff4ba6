package usecase

import (
	"context"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
)

// ResponseUseCase 响应计划业务逻辑
type ResponseUseCase struct {
	repo     repo.ResponseRepo
	entities repo.EntityRepo
	log      *log.Helper
}

// NewResponseUseCase 创建响应计划业务逻辑实例
func NewResponseUseCase(r repo.ResponseRepo, entities repo.EntityRepo, logger log.Logger) *ResponseUseCase {
	return &ResponseUseCase{repo: r, entities: entities, log: log.NewHelper(logger)}
}

// List 列出事件（或其中单个实体）下的响应计划
func (uc *ResponseUseCase) List(ctx context.Context, incidentID uuid.UUID, entityID *uuid.UUID) ([]*domain.ResponsePlan, error) {
	return uc.repo.ListResponses(ctx, incidentID, entityID)
}

// Create 创建响应计划
func (uc *ResponseUseCase) Create(ctx context.Context, p *domain.ResponsePlan) error {
	if err := p.Validate(); err != nil {
		return kerrors.BadRequest("INVALID_RESPONSE", err.Error())
	}

	e, err := uc.entities.GetEntity(ctx, p.EntityID)
	if err != nil {
		return err
	}
	if e.IncidentID != p.IncidentID {
		return kerrors.BadRequest("ENTITY_MISMATCH", "entity does not belong to the incident")
	}
	return uc.repo.CreateResponse(ctx, p)
}
