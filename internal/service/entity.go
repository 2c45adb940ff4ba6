package service

import (
	"encoding/json"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
)

// ListIncidents 列出全部事件
func (s *DashboardService) ListIncidents(ctx khttp.Context) error {
	list, err := s.ucEntity.ListIncidents(ctx)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, list)
}

// CreateIncident 创建事件
func (s *DashboardService) CreateIncident(ctx khttp.Context) error {
	var in domain.Incident
	if err := ctx.Bind(&in); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}
	if err := s.ucEntity.CreateIncident(ctx, &in); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, &in)
}

// ListEntities 列出事件下的实体
func (s *DashboardService) ListEntities(ctx khttp.Context) error {
	incidentID, err := queryUUID(ctx, "incidentId")
	if err != nil {
		return fail(ctx, err)
	}
	if incidentID == nil {
		return fail(ctx, errors.BadRequest("MISSING_INCIDENT", "incidentId is required"))
	}

	list, err := s.ucEntity.ListEntities(ctx, *incidentID)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, list)
}

// CreateEntity 创建实体
func (s *DashboardService) CreateEntity(ctx khttp.Context) error {
	var e domain.Entity
	if err := ctx.Bind(&e); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}
	if err := s.ucEntity.CreateEntity(ctx, &e); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, &e)
}

// submitAssessmentRequest 评估录入请求；payload 按 category 解码
type submitAssessmentRequest struct {
	IncidentID   uuid.UUID       `json:"incidentId"`
	Category     string          `json:"category"`
	AssessorID   string          `json:"assessorId,omitempty"`
	Verification string          `json:"verification,omitempty"`
	AssessedAt   time.Time       `json:"assessedAt,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

// SubmitAssessment 为路径中的实体录入一条评估记录
func (s *DashboardService) SubmitAssessment(ctx khttp.Context) error {
	entityID, err := pathUUID(ctx, "id")
	if err != nil {
		return fail(ctx, err)
	}
	var req submitAssessmentRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return fail(ctx, errors.BadRequest("INVALID_CATEGORY", err.Error()))
	}
	payload, err := domain.DecodePayload(category, req.Payload)
	if err != nil {
		return fail(ctx, errors.BadRequest("INVALID_PAYLOAD", err.Error()))
	}

	assessedAt := req.AssessedAt
	if assessedAt.IsZero() {
		assessedAt = time.Now()
	}

	rec := &domain.AssessmentRecord{
		IncidentID:   req.IncidentID,
		EntityID:     entityID,
		Category:     category,
		AssessorID:   req.AssessorID,
		Verification: domain.VerificationStatus(req.Verification),
		AssessedAt:   assessedAt,
		Payload:      payload,
	}
	if err := s.ucDashboard.SubmitAssessment(ctx, rec); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, rec)
}
