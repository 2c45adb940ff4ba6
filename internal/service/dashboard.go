package service

import (
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/state"
	"github.com/iWorld-y/situation_dashboard/internal/usecase"
)

// GetSituation 态势快照：事件列表 + 选中事件的实体评估与聚合。
// entityId=all 等价于不限定单实体
func (s *DashboardService) GetSituation(ctx khttp.Context) error {
	var q usecase.SituationQuery

	incidentID, err := queryUUID(ctx, "incidentId")
	if err != nil {
		return fail(ctx, err)
	}
	q.IncidentID = incidentID

	if ctx.Query().Get("entityId") == "all" {
		q.IncludeAll = true
	} else {
		entityID, err := queryUUID(ctx, "entityId")
		if err != nil {
			return fail(ctx, err)
		}
		q.EntityID = entityID
	}

	q.IncludeHistorical = ctx.Query().Get("includeHistorical") == "true"
	if raw := ctx.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Limit = n
		}
	}

	snap, err := s.ucDashboard.Situation(ctx, q)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, snap)
}

// GetAggregation 事件级聚合评估
func (s *DashboardService) GetAggregation(ctx khttp.Context) error {
	incidentID, err := queryUUID(ctx, "incidentId")
	if err != nil {
		return fail(ctx, err)
	}
	if incidentID == nil {
		return fail(ctx, errors.BadRequest("MISSING_INCIDENT", "incidentId is required"))
	}

	agg, err := s.ucDashboard.Aggregated(ctx, *incidentID)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, agg)
}

// fieldSeverityData gap-field-severities 响应数据
type fieldSeverityData struct {
	AssessmentType domain.Category `json:"assessmentType"`
	FieldName      string          `json:"fieldName"`
	Severity       domain.Severity `json:"severity"`
}

// GetFieldSeverity 查询单个缺口指标字段的严重度
func (s *DashboardService) GetFieldSeverity(ctx khttp.Context) error {
	category := domain.Category(ctx.Query().Get("assessmentType"))
	field := ctx.Query().Get("fieldName")

	sev, err := s.ucSeverity.Resolve(ctx, category, field)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, fieldSeverityData{AssessmentType: category, FieldName: field, Severity: sev})
}

// overrideSeverityRequest 严重度覆写请求
type overrideSeverityRequest struct {
	AssessmentType string `json:"assessmentType"`
	FieldName      string `json:"fieldName"`
	Severity       string `json:"severity"`
}

// OverrideFieldSeverity 写入人工覆写的字段严重度
func (s *DashboardService) OverrideFieldSeverity(ctx khttp.Context) error {
	var req overrideSeverityRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}
	err := s.ucSeverity.Override(ctx, domain.Category(req.AssessmentType), req.FieldName, domain.Severity(req.Severity))
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, fieldSeverityData{
		AssessmentType: domain.Category(req.AssessmentType),
		FieldName:      req.FieldName,
		Severity:       domain.Severity(req.Severity),
	})
}

// GetSelection 当前会话的看板选择状态
func (s *DashboardService) GetSelection(ctx khttp.Context) error {
	return ok(ctx, s.selection.Snapshot())
}

// selectionRequest 选择状态变更请求
type selectionRequest struct {
	Action     string          `json:"action"`
	IncidentID string          `json:"incidentId,omitempty"`
	EntityID   string          `json:"entityId,omitempty"`
	IncludeAll bool            `json:"includeAll,omitempty"`
	Viewport   *state.Viewport `json:"viewport,omitempty"`
}

// UpdateSelection 以动作的形式修改选择状态，返回变更后的快照
func (s *DashboardService) UpdateSelection(ctx khttp.Context) error {
	var req selectionRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}

	switch req.Action {
	case "selectIncident":
		if req.IncidentID != "" {
			if _, err := uuid.Parse(req.IncidentID); err != nil {
				return fail(ctx, errors.BadRequest("INVALID_ID", "incidentId is not a valid id"))
			}
		}
		s.selection.SelectIncident(req.IncidentID)
	case "selectEntity":
		if req.EntityID != "" {
			if _, err := uuid.Parse(req.EntityID); err != nil {
				return fail(ctx, errors.BadRequest("INVALID_ID", "entityId is not a valid id"))
			}
		}
		s.selection.SelectEntity(req.EntityID)
	case "setIncludeAll":
		s.selection.SetIncludeAll(req.IncludeAll)
	case "setViewport":
		if req.Viewport == nil {
			return fail(ctx, errors.BadRequest("INVALID_VIEWPORT", "viewport is required"))
		}
		s.selection.SetViewport(*req.Viewport)
	case "clear":
		s.selection.Clear()
	default:
		return fail(ctx, errors.BadRequest("INVALID_ACTION", "unknown selection action: "+req.Action))
	}
	return ok(ctx, s.selection.Snapshot())
}

// GetResourceSummary 资源维度的承诺/交付对照
func (s *DashboardService) GetResourceSummary(ctx khttp.Context) error {
	incidentID, err := queryUUID(ctx, "incidentId")
	if err != nil {
		return fail(ctx, err)
	}
	if incidentID == nil {
		return fail(ctx, errors.BadRequest("MISSING_INCIDENT", "incidentId is required"))
	}

	summary, err := s.ucCommitment.ResourceSummary(ctx, *incidentID)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, summary)
}
