package domain

// FieldDefinition 字段目录条目。
// Boolean=true 的字段参与缺口判定；Invert=true 表示该字段是负向指标，
// 原始值为 true 即构成缺口（例如「报告了 GBV 案件」）。
type FieldDefinition struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Boolean bool   `json:"boolean"`
	Invert  bool   `json:"invert,omitempty"`
}

// CatalogEntry 单个类别的字段目录：缺口指标在前，信息性字段在后，顺序固定
type CatalogEntry struct {
	Category         Category          `json:"category"`
	GapIndicators    []FieldDefinition `json:"gapIndicators"`
	NonGapIndicators []FieldDefinition `json:"nonGapIndicators"`
}

var catalog = map[Category]CatalogEntry{
	CategoryHealth: {
		Category: CategoryHealth,
		GapIndicators: []FieldDefinition{
			{Key: "hasFunctionalClinic", Label: "Functional clinic available", Boolean: true},
			{Key: "hasMedicineSupply", Label: "Medicine supply available", Boolean: true},
			{Key: "hasMedicalStaff", Label: "Medical staff present", Boolean: true},
			{Key: "hasMaternalCare", Label: "Maternal care services", Boolean: true},
			{Key: "diseaseOutbreakReported", Label: "Disease outbreak reported", Boolean: true, Invert: true},
		},
		NonGapIndicators: []FieldDefinition{
			{Key: "numberHealthFacilities", Label: "Number of health facilities"},
			{Key: "commonHealthIssues", Label: "Common health issues"},
		},
	},
	CategoryFood: {
		Category: CategoryFood,
		GapIndicators: []FieldDefinition{
			{Key: "isFoodSufficient", Label: "Food supply sufficient", Boolean: true},
			{Key: "hasRegularMealAccess", Label: "Regular meal access", Boolean: true},
			{Key: "hasInfantNutrition", Label: "Infant nutrition available", Boolean: true},
		},
		NonGapIndicators: []FieldDefinition{
			{Key: "foodSource", Label: "Main food source"},
			{Key: "availableFoodDurationDays", Label: "Days of food available"},
		},
	},
	CategoryWash: {
		Category: CategoryWash,
		GapIndicators: []FieldDefinition{
			{Key: "isWaterSufficient", Label: "Water supply sufficient", Boolean: true},
			{Key: "areLatrinesAvailable", Label: "Latrines available", Boolean: true},
			{Key: "hasSolidWasteDisposal", Label: "Solid waste disposal", Boolean: true},
			{Key: "hasHandwashingFacilities", Label: "Handwashing facilities", Boolean: true},
			{Key: "openDefecationObserved", Label: "Open defecation observed", Boolean: true, Invert: true},
		},
		NonGapIndicators: []FieldDefinition{
			{Key: "waterSource", Label: "Main water source"},
		},
	},
	CategoryShelter: {
		Category: CategoryShelter,
		GapIndicators: []FieldDefinition{
			{Key: "areSheltersSufficient", Label: "Shelters sufficient", Boolean: true},
			{Key: "hasBeddingMaterials", Label: "Bedding materials available", Boolean: true},
			{Key: "needsTarpaulins", Label: "Tarpaulins needed", Boolean: true, Invert: true},
		},
		NonGapIndicators: []FieldDefinition{
			{Key: "shelterTypes", Label: "Shelter types in use"},
		},
	},
	CategorySecurity: {
		Category: CategorySecurity,
		GapIndicators: []FieldDefinition{
			{Key: "isSafeFromViolence", Label: "Safe from violence", Boolean: true},
			{Key: "hasSecurityPresence", Label: "Security presence", Boolean: true},
			{Key: "gbvCasesReported", Label: "GBV cases reported", Boolean: true, Invert: true},
		},
		NonGapIndicators: []FieldDefinition{
			{Key: "securityProvider", Label: "Security provider"},
		},
	},
	CategoryPopulation: {
		Category: CategoryPopulation,
		GapIndicators: []FieldDefinition{
			{Key: "unaccompaniedMinorsPresent", Label: "Unaccompanied minors present", Boolean: true, Invert: true},
			{Key: "newArrivalsUnregistered", Label: "Unregistered new arrivals", Boolean: true, Invert: true},
		},
		NonGapIndicators: []FieldDefinition{
			{Key: "totalHouseholds", Label: "Total households"},
			{Key: "totalPopulation", Label: "Total population"},
		},
	},
}

// Catalog 返回指定类别的字段目录。类别是封闭枚举，纯查表、无失败路径
func Catalog(c Category) CatalogEntry {
	return catalog[c]
}

// GapField 在目录中查找缺口指标字段，用于端点侧的入参校验
func GapField(c Category, key string) (FieldDefinition, bool) {
	for _, f := range catalog[c].GapIndicators {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDefinition{}, false
}
