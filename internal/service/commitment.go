package service

import (
	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
)

// pathUUID 从路径参数解析 UUID
func pathUUID(ctx khttp.Context, name string) (uuid.UUID, error) {
	raw := ctx.Vars().Get(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.BadRequest("INVALID_ID", name+" is not a valid id")
	}
	return id, nil
}

// ListCommitments 列出事件下的承诺
func (s *DashboardService) ListCommitments(ctx khttp.Context) error {
	incidentID, err := queryUUID(ctx, "incidentId")
	if err != nil {
		return fail(ctx, err)
	}
	if incidentID == nil {
		return fail(ctx, errors.BadRequest("MISSING_INCIDENT", "incidentId is required"))
	}

	list, err := s.ucCommitment.List(ctx, *incidentID)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, list)
}

// CreateCommitment 创建承诺
func (s *DashboardService) CreateCommitment(ctx khttp.Context) error {
	var c domain.Commitment
	if err := ctx.Bind(&c); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}
	if err := s.ucCommitment.Create(ctx, &c); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, &c)
}

// GetCommitment 取单条承诺（含交付明细）
func (s *DashboardService) GetCommitment(ctx khttp.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	c, err := s.ucCommitment.Get(ctx, id)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, c)
}

// deliverRequest 交付登记请求
type deliverRequest struct {
	Quantity float64 `json:"quantity"`
	Note     string  `json:"note,omitempty"`
}

// DeliverCommitment 登记一次交付，返回刷新后的承诺
func (s *DashboardService) DeliverCommitment(ctx khttp.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	var req deliverRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}

	c, err := s.ucCommitment.Deliver(ctx, id, req.Quantity, req.Note)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, c)
}

// ListResponses 列出事件（或其中单个实体）下的响应计划
func (s *DashboardService) ListResponses(ctx khttp.Context) error {
	incidentID, err := queryUUID(ctx, "incidentId")
	if err != nil {
		return fail(ctx, err)
	}
	if incidentID == nil {
		return fail(ctx, errors.BadRequest("MISSING_INCIDENT", "incidentId is required"))
	}
	entityID, err := queryUUID(ctx, "entityId")
	if err != nil {
		return fail(ctx, err)
	}

	list, err := s.ucResponse.List(ctx, *incidentID, entityID)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, list)
}

// CreateResponse 创建响应计划
func (s *DashboardService) CreateResponse(ctx khttp.Context) error {
	var p domain.ResponsePlan
	if err := ctx.Bind(&p); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}
	if err := s.ucResponse.Create(ctx, &p); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, &p)
}
