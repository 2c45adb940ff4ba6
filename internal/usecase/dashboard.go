package usecase

import (
	"context"
	"fmt"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/cache"
	"github.com/iWorld-y/situation_dashboard/internal/conf"
	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
	"github.com/iWorld-y/situation_dashboard/internal/severity"
)

// SituationQuery 态势查询参数
type SituationQuery struct {
	IncidentID        *uuid.UUID
	EntityID          *uuid.UUID
	IncludeAll        bool
	IncludeHistorical bool
	Limit             int
}

// CategoryState 单实体单类别的展示状态。
// Missing=true 表示该类别尚无评估记录（「Assessment Missing」，不是「No Gaps」）
type CategoryState struct {
	Missing    bool                       `json:"assessmentMissing"`
	Record     *domain.AssessmentRecord   `json:"record,omitempty"`
	Evaluation *domain.Evaluation         `json:"evaluation,omitempty"`
	History    []*domain.AssessmentRecord `json:"history,omitempty"`
}

// EntityAssessment 单实体的完整评估视图
type EntityAssessment struct {
	Entity     *domain.Entity                    `json:"entity"`
	Categories map[domain.Category]CategoryState `json:"categories"`
	GapSummary domain.EntityGapSummary           `json:"gapSummary"`
}

// AggregateMetrics 事件级补充指标
type AggregateMetrics struct {
	TotalEntities    int `json:"totalEntities"`
	AssessedEntities int `json:"assessedEntities"`
	TotalPopulation  int `json:"totalPopulation"`
}

// SituationSnapshot 态势端点的完整响应数据
type SituationSnapshot struct {
	Incidents             []*domain.Incident           `json:"incidents"`
	SelectedIncident      *domain.Incident             `json:"selectedIncident,omitempty"`
	Entities              []*EntityAssessment          `json:"entities"`
	AggregatedAssessments *domain.AggregatedAssessment `json:"aggregatedAssessments,omitempty"`
	AggregateMetrics      *AggregateMetrics            `json:"aggregateMetrics,omitempty"`
}

// cacheWindows 各视图的失效窗口
type cacheWindows struct {
	situation   time.Duration
	aggregation time.Duration
	entities    time.Duration
	incidents   time.Duration
}

func parseWindow(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func newCacheWindows(c *conf.Cache) cacheWindows {
	w := cacheWindows{
		situation:   3 * time.Minute,
		aggregation: 2 * time.Minute,
		entities:    5 * time.Minute,
		incidents:   10 * time.Minute,
	}
	if c == nil {
		return w
	}
	w.situation = parseWindow(c.Situation, w.situation)
	w.aggregation = parseWindow(c.Aggregation, w.aggregation)
	w.entities = parseWindow(c.Entities, w.entities)
	w.incidents = parseWindow(c.Incidents, w.incidents)
	return w
}

// DashboardUseCase 态势看板业务逻辑
type DashboardUseCase struct {
	incidents   repo.IncidentRepo
	entities    repo.EntityRepo
	assessments repo.AssessmentRepo
	cache       *cache.Cache
	sevTable    *severity.Table
	windows     cacheWindows
	log         *log.Helper
}

// NewDashboardUseCase 创建态势看板业务逻辑实例
func NewDashboardUseCase(
	incidents repo.IncidentRepo,
	entities repo.EntityRepo,
	assessments repo.AssessmentRepo,
	qc *cache.Cache,
	sevTable *severity.Table,
	cc *conf.Cache,
	logger log.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		incidents:   incidents,
		entities:    entities,
		assessments: assessments,
		cache:       qc,
		sevTable:    sevTable,
		windows:     newCacheWindows(cc),
		log:         log.NewHelper(logger),
	}
}

// Situation 组装态势快照。
// 实体列表与聚合评估走各自独立的缓存键，互不阻塞；
// 任意一侧先刷新都能得到自洽的快照。
func (uc *DashboardUseCase) Situation(ctx context.Context, q SituationQuery) (*SituationSnapshot, error) {
	// 远端严重度增强在后台进行，不阻塞本次渲染
	uc.sevTable.MaybeRefresh()

	incidents, err := uc.listIncidents(ctx)
	if err != nil {
		return nil, err
	}

	snap := &SituationSnapshot{Incidents: incidents, Entities: []*EntityAssessment{}}
	if q.IncidentID == nil {
		// 未选中事件：空态，交给 UI 渲染「未选择」而非错误
		return snap, nil
	}

	selected := findIncident(incidents, *q.IncidentID)
	if selected == nil {
		selected, err = uc.incidents.GetIncident(ctx, *q.IncidentID)
		if err != nil {
			return nil, err
		}
	}
	snap.SelectedIncident = selected

	entities, err := uc.listEntities(ctx, *q.IncidentID)
	if err != nil {
		return nil, err
	}

	records, err := uc.listLatest(ctx, *q.IncidentID, q)
	if err != nil {
		return nil, err
	}
	byEntity := groupRecords(records)

	scoped := entities
	if q.EntityID != nil && !q.IncludeAll {
		scoped = nil
		for _, e := range entities {
			if e.ID == *q.EntityID {
				scoped = []*domain.Entity{e}
				break
			}
		}
		if scoped == nil {
			return nil, kerrors.NotFound("ENTITY_NOT_FOUND", "entity not found in incident")
		}
	}

	metrics := &AggregateMetrics{TotalEntities: len(entities)}
	for _, e := range scoped {
		ea := uc.buildEntityAssessment(ctx, e, byEntity[e.ID], q)
		snap.Entities = append(snap.Entities, ea)
	}
	for _, e := range entities {
		metrics.TotalPopulation += e.Population
		if len(byEntity[e.ID]) > 0 {
			metrics.AssessedEntities++
		}
	}
	snap.AggregateMetrics = metrics

	agg, err := uc.aggregated(ctx, *q.IncidentID)
	if err != nil {
		// 聚合侧失败不拖垮实体侧：记日志并留空，调用方照常渲染
		uc.log.Warnf("aggregation unavailable for incident %s: %v", q.IncidentID, err)
	} else {
		snap.AggregatedAssessments = agg
	}

	return snap, nil
}

// Aggregated 单独返回事件级聚合评估（独立缓存键）
func (uc *DashboardUseCase) Aggregated(ctx context.Context, incidentID uuid.UUID) (*domain.AggregatedAssessment, error) {
	return uc.aggregated(ctx, incidentID)
}

// SubmitAssessment 录入一条评估记录并使相关缓存失效
func (uc *DashboardUseCase) SubmitAssessment(ctx context.Context, rec *domain.AssessmentRecord) error {
	if !rec.Category.Valid() {
		return kerrors.BadRequest("INVALID_CATEGORY", fmt.Sprintf("unknown assessment category: %q", rec.Category))
	}
	if rec.Payload == nil || rec.Payload.AssessmentType() != rec.Category {
		return kerrors.BadRequest("PAYLOAD_MISMATCH", "payload does not match assessment category")
	}
	if rec.Verification == "" {
		rec.Verification = domain.VerificationPending
	}
	if !rec.Verification.Valid() {
		return kerrors.BadRequest("INVALID_VERIFICATION", fmt.Sprintf("unknown verification status: %q", rec.Verification))
	}

	e, err := uc.entities.GetEntity(ctx, rec.EntityID)
	if err != nil {
		return err
	}
	if e.IncidentID != rec.IncidentID {
		return kerrors.BadRequest("ENTITY_MISMATCH", "entity does not belong to the incident")
	}

	if err := uc.assessments.Save(ctx, rec); err != nil {
		return err
	}
	uc.cache.InvalidateIncident(rec.IncidentID.String())
	return nil
}

func (uc *DashboardUseCase) buildEntityAssessment(ctx context.Context, e *domain.Entity, recs map[domain.Category]*domain.AssessmentRecord, q SituationQuery) *EntityAssessment {
	ea := &EntityAssessment{
		Entity:     e,
		Categories: make(map[domain.Category]CategoryState, len(domain.Categories())),
	}

	evals := make(map[domain.Category]domain.Evaluation)
	for _, c := range domain.Categories() {
		rec, ok := recs[c]
		if !ok {
			// 记录缺失：显式 Missing 状态，绝不调用求值器
			ea.Categories[c] = CategoryState{Missing: true}
			continue
		}
		ev := domain.Evaluate(rec, domain.Catalog(c), uc.sevTable.Snapshot(c))
		evals[c] = ev
		st := CategoryState{Record: rec, Evaluation: &ev}
		if q.IncludeHistorical && q.EntityID != nil {
			history, err := uc.assessments.ListHistory(ctx, e.ID, c, q.Limit)
			if err != nil {
				uc.log.Warnf("history unavailable for %s/%s: %v", e.ID, c, err)
			} else {
				st.History = history
			}
		}
		ea.Categories[c] = st
	}
	ea.GapSummary = domain.SummarizeEntity(evals)
	return ea
}

func (uc *DashboardUseCase) listIncidents(ctx context.Context) ([]*domain.Incident, error) {
	key := cache.Key{IncidentID: "all", EntityID: "all", View: "incidents"}
	v, err := uc.cache.Do(ctx, key, uc.windows.incidents, func(ctx context.Context) (any, error) {
		return uc.incidents.ListIncidents(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Incident), nil
}

func (uc *DashboardUseCase) listEntities(ctx context.Context, incidentID uuid.UUID) ([]*domain.Entity, error) {
	key := cache.Key{IncidentID: incidentID.String(), EntityID: "all", View: "entities"}
	v, err := uc.cache.Do(ctx, key, uc.windows.entities, func(ctx context.Context) (any, error) {
		return uc.entities.ListByIncident(ctx, incidentID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Entity), nil
}

func (uc *DashboardUseCase) listLatest(ctx context.Context, incidentID uuid.UUID, q SituationQuery) ([]*domain.AssessmentRecord, error) {
	entityKey := "all"
	var entityID *uuid.UUID
	if q.EntityID != nil && !q.IncludeAll {
		entityKey = q.EntityID.String()
		entityID = q.EntityID
	}
	key := cache.Key{IncidentID: incidentID.String(), EntityID: entityKey, View: "situation"}
	v, err := uc.cache.Do(ctx, key, uc.windows.situation, func(ctx context.Context) (any, error) {
		return uc.assessments.ListLatest(ctx, incidentID, entityID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.AssessmentRecord), nil
}

func (uc *DashboardUseCase) aggregated(ctx context.Context, incidentID uuid.UUID) (*domain.AggregatedAssessment, error) {
	key := cache.Key{IncidentID: incidentID.String(), EntityID: "all", View: "aggregation"}
	v, err := uc.cache.Do(ctx, key, uc.windows.aggregation, func(ctx context.Context) (any, error) {
		records, err := uc.assessments.ListLatest(ctx, incidentID, nil)
		if err != nil {
			return nil, err
		}
		byEntity := groupRecords(records)
		entityEvals := make([]domain.EntityEvaluation, 0, len(byEntity))
		for entityID, recs := range byEntity {
			ee := domain.EntityEvaluation{EntityID: entityID, ByCategory: make(map[domain.Category]domain.Evaluation, len(recs))}
			for c, rec := range recs {
				ee.ByCategory[c] = domain.Evaluate(rec, domain.Catalog(c), uc.sevTable.Snapshot(c))
			}
			entityEvals = append(entityEvals, ee)
		}
		agg := domain.Aggregate(entityEvals)
		return &agg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.AggregatedAssessment), nil
}

func groupRecords(records []*domain.AssessmentRecord) map[uuid.UUID]map[domain.Category]*domain.AssessmentRecord {
	out := make(map[uuid.UUID]map[domain.Category]*domain.AssessmentRecord)
	for _, rec := range records {
		if out[rec.EntityID] == nil {
			out[rec.EntityID] = make(map[domain.Category]*domain.AssessmentRecord)
		}
		out[rec.EntityID][rec.Category] = rec
	}
	return out
}

func findIncident(list []*domain.Incident, id uuid.UUID) *domain.Incident {
	for _, in := range list {
		if in.ID == id {
			return in
		}
	}
	return nil
}
