package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VerificationStatus 评估记录的核验状态
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationPending  VerificationStatus = "PENDING"
	VerificationRejected VerificationStatus = "REJECTED"
)

// Valid 判断核验状态是否合法
func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationVerified, VerificationPending, VerificationRejected:
		return true
	}
	return false
}

// Payload 按类别打标签的评估载荷联合体。
// 每个类别一个具体结构，缺口判定通过 BoolField 做按键查询，
// 查不到的键视同 false（未建模「未知」状态）。
type Payload interface {
	// AssessmentType 返回载荷所属类别（判别字段）
	AssessmentType() Category
	// BoolField 按字段目录的 key 取布尔值；非布尔或不存在的键返回 ok=false
	BoolField(key string) (value, ok bool)
}

// HealthAssessment 卫生健康评估载荷
type HealthAssessment struct {
	HasFunctionalClinic     bool   `json:"hasFunctionalClinic"`
	HasMedicineSupply       bool   `json:"hasMedicineSupply"`
	HasMedicalStaff         bool   `json:"hasMedicalStaff"`
	HasMaternalCare         bool   `json:"hasMaternalCare"`
	DiseaseOutbreakReported bool   `json:"diseaseOutbreakReported"`
	NumberHealthFacilities  int    `json:"numberHealthFacilities"`
	CommonHealthIssues      string `json:"commonHealthIssues"`
}

func (HealthAssessment) AssessmentType() Category { return CategoryHealth }

func (a HealthAssessment) BoolField(key string) (bool, bool) {
	switch key {
	case "hasFunctionalClinic":
		return a.HasFunctionalClinic, true
	case "hasMedicineSupply":
		return a.HasMedicineSupply, true
	case "hasMedicalStaff":
		return a.HasMedicalStaff, true
	case "hasMaternalCare":
		return a.HasMaternalCare, true
	case "diseaseOutbreakReported":
		return a.DiseaseOutbreakReported, true
	}
	return false, false
}

// FoodAssessment 粮食安全评估载荷
type FoodAssessment struct {
	IsFoodSufficient          bool   `json:"isFoodSufficient"`
	HasRegularMealAccess      bool   `json:"hasRegularMealAccess"`
	HasInfantNutrition        bool   `json:"hasInfantNutrition"`
	FoodSource                string `json:"foodSource"`
	AvailableFoodDurationDays int    `json:"availableFoodDurationDays"`
}

func (FoodAssessment) AssessmentType() Category { return CategoryFood }

func (a FoodAssessment) BoolField(key string) (bool, bool) {
	switch key {
	case "isFoodSufficient":
		return a.IsFoodSufficient, true
	case "hasRegularMealAccess":
		return a.HasRegularMealAccess, true
	case "hasInfantNutrition":
		return a.HasInfantNutrition, true
	}
	return false, false
}

// WashAssessment 水与环境卫生评估载荷
type WashAssessment struct {
	IsWaterSufficient        bool   `json:"isWaterSufficient"`
	AreLatrinesAvailable     bool   `json:"areLatrinesAvailable"`
	HasSolidWasteDisposal    bool   `json:"hasSolidWasteDisposal"`
	HasHandwashingFacilities bool   `json:"hasHandwashingFacilities"`
	OpenDefecationObserved   bool   `json:"openDefecationObserved"`
	WaterSource              string `json:"waterSource"`
}

func (WashAssessment) AssessmentType() Category { return CategoryWash }

func (a WashAssessment) BoolField(key string) (bool, bool) {
	switch key {
	case "isWaterSufficient":
		return a.IsWaterSufficient, true
	case "areLatrinesAvailable":
		return a.AreLatrinesAvailable, true
	case "hasSolidWasteDisposal":
		return a.HasSolidWasteDisposal, true
	case "hasHandwashingFacilities":
		return a.HasHandwashingFacilities, true
	case "openDefecationObserved":
		return a.OpenDefecationObserved, true
	}
	return false, false
}

// ShelterAssessment 住所评估载荷
type ShelterAssessment struct {
	AreSheltersSufficient bool   `json:"areSheltersSufficient"`
	HasBeddingMaterials   bool   `json:"hasBeddingMaterials"`
	NeedsTarpaulins       bool   `json:"needsTarpaulins"`
	ShelterTypes          string `json:"shelterTypes"`
}

func (ShelterAssessment) AssessmentType() Category { return CategoryShelter }

func (a ShelterAssessment) BoolField(key string) (bool, bool) {
	switch key {
	case "areSheltersSufficient":
		return a.AreSheltersSufficient, true
	case "hasBeddingMaterials":
		return a.HasBeddingMaterials, true
	case "needsTarpaulins":
		return a.NeedsTarpaulins, true
	}
	return false, false
}

// SecurityAssessment 安全评估载荷
type SecurityAssessment struct {
	IsSafeFromViolence  bool   `json:"isSafeFromViolence"`
	HasSecurityPresence bool   `json:"hasSecurityPresence"`
	GbvCasesReported    bool   `json:"gbvCasesReported"`
	SecurityProvider    string `json:"securityProvider"`
}

func (SecurityAssessment) AssessmentType() Category { return CategorySecurity }

func (a SecurityAssessment) BoolField(key string) (bool, bool) {
	switch key {
	case "isSafeFromViolence":
		return a.IsSafeFromViolence, true
	case "hasSecurityPresence":
		return a.HasSecurityPresence, true
	case "gbvCasesReported":
		return a.GbvCasesReported, true
	}
	return false, false
}

// PopulationAssessment 人口评估载荷
type PopulationAssessment struct {
	UnaccompaniedMinorsPresent bool `json:"unaccompaniedMinorsPresent"`
	NewArrivalsUnregistered    bool `json:"newArrivalsUnregistered"`
	TotalHouseholds            int  `json:"totalHouseholds"`
	TotalPopulation            int  `json:"totalPopulation"`
}

func (PopulationAssessment) AssessmentType() Category { return CategoryPopulation }

func (a PopulationAssessment) BoolField(key string) (bool, bool) {
	switch key {
	case "unaccompaniedMinorsPresent":
		return a.UnaccompaniedMinorsPresent, true
	case "newArrivalsUnregistered":
		return a.NewArrivalsUnregistered, true
	}
	return false, false
}

// AssessmentRecord 一条评估记录：每个 (实体, 类别) 只展示最新一条
type AssessmentRecord struct {
	ID           uuid.UUID          `json:"id"`
	IncidentID   uuid.UUID          `json:"incidentId"`
	EntityID     uuid.UUID          `json:"entityId"`
	Category     Category           `json:"category"`
	AssessorID   string             `json:"assessorId"`
	Verification VerificationStatus `json:"verification"`
	AssessedAt   time.Time          `json:"assessedAt"`
	Payload      Payload            `json:"payload"`
}

// DecodePayload 按类别把 JSON 载荷还原为具体结构（封闭联合体的唯一解码口）
func DecodePayload(c Category, data []byte) (Payload, error) {
	switch c {
	case CategoryHealth:
		var p HealthAssessment
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case CategoryFood:
		var p FoodAssessment
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case CategoryWash:
		var p WashAssessment
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case CategoryShelter:
		var p ShelterAssessment
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case CategorySecurity:
		var p SecurityAssessment
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case CategoryPopulation:
		var p PopulationAssessment
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown assessment category: %q", c)
}
