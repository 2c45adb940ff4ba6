package domain

import "testing"

func TestCatalog_CoversAllCategories(t *testing.T) {
	for _, c := range Categories() {
		entry := Catalog(c)
		if entry.Category != c {
			t.Errorf("Catalog(%s).Category = %s", c, entry.Category)
		}
		if len(entry.GapIndicators) == 0 {
			t.Errorf("Catalog(%s) has no gap indicators", c)
		}
		for _, f := range entry.GapIndicators {
			if !f.Boolean {
				t.Errorf("%s gap indicator %s must be boolean", c, f.Key)
			}
		}
		for _, f := range entry.NonGapIndicators {
			if f.Boolean {
				t.Errorf("%s informational field %s must not be boolean", c, f.Key)
			}
		}
	}
}

func TestCatalog_ScenarioFields(t *testing.T) {
	food := Catalog(CategoryFood)
	for _, key := range []string{"isFoodSufficient", "hasRegularMealAccess", "hasInfantNutrition"} {
		if _, ok := GapField(CategoryFood, key); !ok {
			t.Errorf("FOOD catalog missing gap indicator %s (have %v)", key, food.GapIndicators)
		}
	}

	gbv, ok := GapField(CategorySecurity, "gbvCasesReported")
	if !ok {
		t.Fatal("SECURITY catalog missing gbvCasesReported")
	}
	if !gbv.Invert {
		t.Error("gbvCasesReported must be marked invert")
	}
}

func TestCatalog_PayloadsAnswerAllGapKeys(t *testing.T) {
	// 每个缺口指标的 key 都必须能在对应载荷上按键取值
	payloads := map[Category]Payload{
		CategoryHealth:     HealthAssessment{},
		CategoryFood:       FoodAssessment{},
		CategoryWash:       WashAssessment{},
		CategoryShelter:    ShelterAssessment{},
		CategorySecurity:   SecurityAssessment{},
		CategoryPopulation: PopulationAssessment{},
	}
	for c, p := range payloads {
		if p.AssessmentType() != c {
			t.Errorf("payload for %s reports type %s", c, p.AssessmentType())
		}
		for _, f := range Catalog(c).GapIndicators {
			if _, ok := p.BoolField(f.Key); !ok {
				t.Errorf("%s payload cannot answer gap key %s", c, f.Key)
			}
		}
	}
}

func TestDecodePayload_RoundsByCategory(t *testing.T) {
	raw := []byte(`{"isFoodSufficient": true, "foodSource": "market"}`)
	p, err := DecodePayload(CategoryFood, raw)
	if err != nil {
		t.Fatalf("DecodePayload() error = %v", err)
	}
	food, ok := p.(FoodAssessment)
	if !ok {
		t.Fatalf("DecodePayload() returned %T, want FoodAssessment", p)
	}
	if !food.IsFoodSufficient || food.FoodSource != "market" {
		t.Errorf("decoded payload = %+v", food)
	}

	if _, err := DecodePayload(Category("NOPE"), raw); err == nil {
		t.Error("DecodePayload should reject unknown categories")
	}
}
