package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func foodRecord(sufficient, meals, infant bool) *AssessmentRecord {
	return &AssessmentRecord{
		Category: CategoryFood,
		Payload: FoodAssessment{
			IsFoodSufficient:     sufficient,
			HasRegularMealAccess: meals,
			HasInfantNutrition:   infant,
		},
	}
}

func TestEvaluate_FoodGaps(t *testing.T) {
	// isFoodSufficient=false 构成缺口，其余两项不构成
	rec := foodRecord(false, true, true)
	ev := Evaluate(rec, Catalog(CategoryFood), nil)

	if !ev.HasGap {
		t.Fatal("Evaluate() HasGap = false, want true")
	}
	if !ev.PerField["isFoodSufficient"].HasGap {
		t.Error("isFoodSufficient should be a gap")
	}
	if ev.PerField["hasRegularMealAccess"].HasGap {
		t.Error("hasRegularMealAccess should not be a gap")
	}
	if ev.PerField["hasInfantNutrition"].HasGap {
		t.Error("hasInfantNutrition should not be a gap")
	}
	if ev.Severity != SeverityCritical {
		t.Errorf("Severity = %v, want CRITICAL (isFoodSufficient)", ev.Severity)
	}
}

func TestEvaluate_InvertedIndicator(t *testing.T) {
	// gbvCasesReported 是负向指标：原始值为 true 即构成缺口
	rec := &AssessmentRecord{
		Category: CategorySecurity,
		Payload: SecurityAssessment{
			GbvCasesReported:    true,
			IsSafeFromViolence:  true,
			HasSecurityPresence: true,
		},
	}
	ev := Evaluate(rec, Catalog(CategorySecurity), nil)

	if !ev.PerField["gbvCasesReported"].HasGap {
		t.Error("gbvCasesReported=true should be a gap (invert)")
	}
	if ev.PerField["isSafeFromViolence"].HasGap {
		t.Error("isSafeFromViolence=true should not be a gap")
	}
	if !ev.HasGap {
		t.Error("category HasGap should be true")
	}

	// 负向指标为 false 时不构成缺口
	rec.Payload = SecurityAssessment{
		IsSafeFromViolence:  true,
		HasSecurityPresence: true,
	}
	ev = Evaluate(rec, Catalog(CategorySecurity), nil)
	if ev.PerField["gbvCasesReported"].HasGap {
		t.Error("gbvCasesReported=false should not be a gap")
	}
}

func TestEvaluate_MissingValueReadsFalse(t *testing.T) {
	// 空载荷：正向指标全部判缺口，负向指标全部不判
	rec := &AssessmentRecord{Category: CategoryWash, Payload: WashAssessment{}}
	ev := Evaluate(rec, Catalog(CategoryWash), nil)

	if !ev.PerField["isWaterSufficient"].HasGap {
		t.Error("missing isWaterSufficient should count as gap")
	}
	if ev.PerField["openDefecationObserved"].HasGap {
		t.Error("missing openDefecationObserved (invert) should not count as gap")
	}
}

func TestEvaluate_NoGapSeverityIsNone(t *testing.T) {
	rec := foodRecord(true, true, true)
	ev := Evaluate(rec, Catalog(CategoryFood), nil)

	if ev.HasGap {
		t.Fatal("record without gaps evaluated HasGap=true")
	}
	if ev.Severity != SeverityNone {
		t.Errorf("Severity = %q, want SeverityNone", ev.Severity)
	}
	for key, r := range ev.PerField {
		if r.Severity != SeverityNone {
			t.Errorf("field %s severity = %q, want SeverityNone", key, r.Severity)
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	rec := foodRecord(false, false, true)
	first := Evaluate(rec, Catalog(CategoryFood), nil)
	second := Evaluate(rec, Catalog(CategoryFood), nil)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Evaluate() not idempotent (-first +second):\n%s", diff)
	}
}

func TestEvaluate_PrecomputedSeverityWins(t *testing.T) {
	rec := foodRecord(false, true, true)
	pre := map[string]Severity{"isFoodSufficient": SeverityMedium}
	ev := Evaluate(rec, Catalog(CategoryFood), pre)

	if got := ev.PerField["isFoodSufficient"].Severity; got != SeverityMedium {
		t.Errorf("severity = %v, want MEDIUM from precomputed map", got)
	}
	if ev.Severity != SeverityMedium {
		t.Errorf("category severity = %v, want MEDIUM", ev.Severity)
	}
}
