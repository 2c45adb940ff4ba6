package usecase

import (
	"context"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/cache"
	"github.com/iWorld-y/situation_dashboard/internal/conf"
	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
)

// CommitmentUseCase 捐助承诺业务逻辑
type CommitmentUseCase struct {
	repo      repo.CommitmentRepo
	cache     *cache.Cache
	resources time.Duration
	log       *log.Helper
}

// NewCommitmentUseCase 创建捐助承诺业务逻辑实例
func NewCommitmentUseCase(r repo.CommitmentRepo, qc *cache.Cache, cc *conf.Cache, logger log.Logger) *CommitmentUseCase {
	window := 5 * time.Minute
	if cc != nil {
		window = parseWindow(cc.Resources, window)
	}
	return &CommitmentUseCase{repo: r, cache: qc, resources: window, log: log.NewHelper(logger)}
}

// List 列出事件下的承诺
func (uc *CommitmentUseCase) List(ctx context.Context, incidentID uuid.UUID) ([]*domain.Commitment, error) {
	return uc.repo.ListCommitments(ctx, incidentID)
}

// Get 取单条承诺
func (uc *CommitmentUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Commitment, error) {
	return uc.repo.GetCommitment(ctx, id)
}

// Create 创建承诺并使资源视图缓存失效
func (uc *CommitmentUseCase) Create(ctx context.Context, c *domain.Commitment) error {
	if err := c.Validate(); err != nil {
		return kerrors.BadRequest("INVALID_COMMITMENT", err.Error())
	}
	if err := uc.repo.CreateCommitment(ctx, c); err != nil {
		return err
	}
	uc.cache.InvalidateIncident(c.IncidentID.String())
	return nil
}

// Deliver 记录一次交付
func (uc *CommitmentUseCase) Deliver(ctx context.Context, commitmentID uuid.UUID, quantity float64, note string) (*domain.Commitment, error) {
	if quantity <= 0 {
		return nil, kerrors.BadRequest("INVALID_DELIVERY", "quantity must be positive")
	}
	c, err := uc.repo.GetCommitment(ctx, commitmentID)
	if err != nil {
		return nil, err
	}

	d := &domain.Delivery{CommitmentID: commitmentID, Quantity: quantity, Note: note}
	if err := uc.repo.AddDelivery(ctx, d); err != nil {
		return nil, err
	}
	uc.cache.InvalidateIncident(c.IncidentID.String())
	return uc.repo.GetCommitment(ctx, commitmentID)
}

// ResourceSummary 资源维度的承诺/交付对照（带缓存）
func (uc *CommitmentUseCase) ResourceSummary(ctx context.Context, incidentID uuid.UUID) ([]*domain.ResourceSummary, error) {
	key := cache.Key{IncidentID: incidentID.String(), EntityID: "all", View: "resources"}
	v, err := uc.cache.Do(ctx, key, uc.resources, func(ctx context.Context) (any, error) {
		return uc.repo.ResourceSummary(ctx, incidentID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.ResourceSummary), nil
}
