package usecase

import (
	"context"
	"testing"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/cache"
	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/severity"
)

// mockIncidentRepo 模拟事件仓库
type mockIncidentRepo struct {
	incidents []*domain.Incident
}

func (m *mockIncidentRepo) ListIncidents(ctx context.Context) ([]*domain.Incident, error) {
	return m.incidents, nil
}

func (m *mockIncidentRepo) GetIncident(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	for _, in := range m.incidents {
		if in.ID == id {
			return in, nil
		}
	}
	return nil, kerrors.NotFound("INCIDENT_NOT_FOUND", "incident not found")
}

func (m *mockIncidentRepo) CreateIncident(ctx context.Context, in *domain.Incident) error {
	m.incidents = append(m.incidents, in)
	return nil
}

// mockEntityRepo 模拟实体仓库
type mockEntityRepo struct {
	entities []*domain.Entity
}

func (m *mockEntityRepo) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.Entity, error) {
	var out []*domain.Entity
	for _, e := range m.entities {
		if e.IncidentID == incidentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEntityRepo) GetEntity(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	for _, e := range m.entities {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, kerrors.NotFound("ENTITY_NOT_FOUND", "entity not found")
}

func (m *mockEntityRepo) CreateEntity(ctx context.Context, e *domain.Entity) error {
	m.entities = append(m.entities, e)
	return nil
}

// mockAssessmentRepo 模拟评估仓库
type mockAssessmentRepo struct {
	records []*domain.AssessmentRecord
	saved   []*domain.AssessmentRecord
}

func (m *mockAssessmentRepo) ListLatest(ctx context.Context, incidentID uuid.UUID, entityID *uuid.UUID) ([]*domain.AssessmentRecord, error) {
	var out []*domain.AssessmentRecord
	for _, r := range m.records {
		if r.IncidentID != incidentID {
			continue
		}
		if entityID != nil && r.EntityID != *entityID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockAssessmentRepo) ListHistory(ctx context.Context, entityID uuid.UUID, category domain.Category, limit int) ([]*domain.AssessmentRecord, error) {
	return nil, nil
}

func (m *mockAssessmentRepo) Save(ctx context.Context, rec *domain.AssessmentRecord) error {
	m.saved = append(m.saved, rec)
	m.records = append(m.records, rec)
	return nil
}

func newDashboardFixture() (*DashboardUseCase, *mockIncidentRepo, *mockEntityRepo, *mockAssessmentRepo, uuid.UUID) {
	incidentID := uuid.New()
	incidents := &mockIncidentRepo{incidents: []*domain.Incident{{
		ID: incidentID, Name: "Flood 2026", Type: "FLOOD", Status: "ACTIVE", OccurredAt: time.Now(),
	}}}

	e1 := &domain.Entity{ID: uuid.New(), IncidentID: incidentID, Name: "Camp A", Kind: domain.EntityCamp, Population: 1200}
	e2 := &domain.Entity{ID: uuid.New(), IncidentID: incidentID, Name: "Ward B", Kind: domain.EntityWard, Population: 800}
	e3 := &domain.Entity{ID: uuid.New(), IncidentID: incidentID, Name: "Community C", Kind: domain.EntityCommunity, Population: 500}
	entities := &mockEntityRepo{entities: []*domain.Entity{e1, e2, e3}}

	assessments := &mockAssessmentRepo{records: []*domain.AssessmentRecord{
		{
			ID: uuid.New(), IncidentID: incidentID, EntityID: e1.ID, Category: domain.CategoryFood,
			Verification: domain.VerificationVerified, AssessedAt: time.Now(),
			Payload: domain.FoodAssessment{IsFoodSufficient: false, HasRegularMealAccess: true, HasInfantNutrition: true},
		},
		{
			ID: uuid.New(), IncidentID: incidentID, EntityID: e2.ID, Category: domain.CategoryFood,
			Verification: domain.VerificationVerified, AssessedAt: time.Now(),
			Payload: domain.FoodAssessment{IsFoodSufficient: true, HasRegularMealAccess: true, HasInfantNutrition: true},
		},
	}}

	table := severity.NewTable(nil, nil, log.DefaultLogger)
	uc := NewDashboardUseCase(incidents, entities, assessments, cache.New(), table, nil, log.DefaultLogger)
	return uc, incidents, entities, assessments, incidentID
}

func TestSituation_NoIncidentSelected(t *testing.T) {
	uc, _, _, _, _ := newDashboardFixture()

	snap, err := uc.Situation(context.Background(), SituationQuery{})
	if err != nil {
		t.Fatalf("Situation() error = %v", err)
	}
	if len(snap.Incidents) != 1 {
		t.Errorf("incidents = %d, want 1", len(snap.Incidents))
	}
	if snap.SelectedIncident != nil || snap.AggregatedAssessments != nil {
		t.Error("empty selection must not carry incident-scoped data")
	}
	if len(snap.Entities) != 0 {
		t.Errorf("entities = %d, want 0", len(snap.Entities))
	}
}

func TestSituation_AggregatesIncident(t *testing.T) {
	uc, _, _, _, incidentID := newDashboardFixture()

	snap, err := uc.Situation(context.Background(), SituationQuery{IncidentID: &incidentID})
	if err != nil {
		t.Fatalf("Situation() error = %v", err)
	}
	if snap.SelectedIncident == nil || snap.SelectedIncident.ID != incidentID {
		t.Fatal("selected incident not resolved")
	}
	if len(snap.Entities) != 3 {
		t.Fatalf("entities = %d, want 3", len(snap.Entities))
	}

	agg := snap.AggregatedAssessments
	if agg == nil {
		t.Fatal("aggregated assessments missing")
	}
	// 只有 2 个实体提交了 FOOD 评估，第 3 个被排除
	if agg.Food.TotalEntities != 2 {
		t.Errorf("Food.TotalEntities = %d, want 2", agg.Food.TotalEntities)
	}
	if agg.Food.EntitiesWithGaps != 1 || agg.Food.EntitiesWithoutGaps != 1 {
		t.Errorf("Food gaps split = %d/%d, want 1/1", agg.Food.EntitiesWithGaps, agg.Food.EntitiesWithoutGaps)
	}
	// isFoodSufficient 是 CRITICAL 字段
	if agg.Food.CriticalGaps != 1 {
		t.Errorf("Food.CriticalGaps = %d, want 1", agg.Food.CriticalGaps)
	}
	if agg.GapSummary.CriticalGaps > agg.GapSummary.TotalGaps {
		t.Errorf("gapSummary invariant violated: %+v", agg.GapSummary)
	}

	if snap.AggregateMetrics.AssessedEntities != 2 || snap.AggregateMetrics.TotalEntities != 3 {
		t.Errorf("metrics = %+v", snap.AggregateMetrics)
	}
}

func TestSituation_MissingAssessmentState(t *testing.T) {
	uc, _, entities, _, incidentID := newDashboardFixture()

	snap, err := uc.Situation(context.Background(), SituationQuery{IncidentID: &incidentID})
	if err != nil {
		t.Fatalf("Situation() error = %v", err)
	}

	var noRecords *EntityAssessment
	for _, ea := range snap.Entities {
		if ea.Entity.ID == entities.entities[2].ID {
			noRecords = ea
		}
	}
	if noRecords == nil {
		t.Fatal("entity without records missing from snapshot")
	}
	for c, st := range noRecords.Categories {
		if !st.Missing {
			t.Errorf("category %s should be Missing, got %+v", c, st)
		}
		if st.Evaluation != nil {
			t.Errorf("category %s must not carry an evaluation", c)
		}
	}

	// 有记录的实体：FOOD 已评估，其余类别 Missing
	var withRecord *EntityAssessment
	for _, ea := range snap.Entities {
		if ea.Entity.ID == entities.entities[0].ID {
			withRecord = ea
		}
	}
	if withRecord.Categories[domain.CategoryFood].Missing {
		t.Error("FOOD state should not be Missing for assessed entity")
	}
	if !withRecord.Categories[domain.CategoryWash].Missing {
		t.Error("WASH state should be Missing")
	}
	if !withRecord.Categories[domain.CategoryFood].Evaluation.HasGap {
		t.Error("FOOD evaluation should report a gap")
	}
}

func TestSituation_SingleEntityScope(t *testing.T) {
	uc, _, entities, _, incidentID := newDashboardFixture()
	target := entities.entities[1].ID

	snap, err := uc.Situation(context.Background(), SituationQuery{IncidentID: &incidentID, EntityID: &target})
	if err != nil {
		t.Fatalf("Situation() error = %v", err)
	}
	if len(snap.Entities) != 1 || snap.Entities[0].Entity.ID != target {
		t.Fatalf("scoped entities = %d", len(snap.Entities))
	}

	unknown := uuid.New()
	if _, err := uc.Situation(context.Background(), SituationQuery{IncidentID: &incidentID, EntityID: &unknown}); !kerrors.IsNotFound(err) {
		t.Errorf("unknown entity error = %v, want NotFound", err)
	}
}

func TestSubmitAssessment_Validation(t *testing.T) {
	uc, _, entities, assessments, incidentID := newDashboardFixture()
	entityID := entities.entities[0].ID

	// 载荷类别与记录类别不一致
	err := uc.SubmitAssessment(context.Background(), &domain.AssessmentRecord{
		IncidentID: incidentID, EntityID: entityID,
		Category: domain.CategoryWash,
		Payload:  domain.FoodAssessment{},
	})
	if !kerrors.IsBadRequest(err) {
		t.Errorf("mismatched payload error = %v, want BadRequest", err)
	}

	// 实体不属于事件
	otherIncident := uuid.New()
	err = uc.SubmitAssessment(context.Background(), &domain.AssessmentRecord{
		IncidentID: otherIncident, EntityID: entityID,
		Category: domain.CategoryFood,
		Payload:  domain.FoodAssessment{},
	})
	if !kerrors.IsBadRequest(err) {
		t.Errorf("entity mismatch error = %v, want BadRequest", err)
	}

	// 合法提交：默认 PENDING 并真正落库
	err = uc.SubmitAssessment(context.Background(), &domain.AssessmentRecord{
		IncidentID: incidentID, EntityID: entityID,
		Category: domain.CategoryFood,
		Payload:  domain.FoodAssessment{IsFoodSufficient: true},
	})
	if err != nil {
		t.Fatalf("SubmitAssessment() error = %v", err)
	}
	if len(assessments.saved) != 1 {
		t.Fatalf("saved records = %d, want 1", len(assessments.saved))
	}
	if assessments.saved[0].Verification != domain.VerificationPending {
		t.Errorf("verification = %s, want PENDING default", assessments.saved[0].Verification)
	}
}
