package domain

import "fmt"

// Severity 缺口严重度，序关系 CRITICAL > HIGH > MEDIUM > LOW。
// SeverityNone 表示「无缺口 / 不适用」，与 LOW 严格区分：
// LOW 是解析器对未命中字段的回退哨兵，绝不代表真实存在的低危缺口。
type Severity string

const (
	SeverityNone     Severity = ""
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// rank 返回严重度的序数，用于取最大值比较
func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Valid 判断是否为四级严重度之一（不含 None）
func (s Severity) Valid() bool {
	return s.rank() > 0
}

// MaxSeverity 返回两个严重度中更高的一个
func MaxSeverity(a, b Severity) Severity {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// ParseSeverity 解析严重度字符串（大写）
func ParseSeverity(s string) (Severity, error) {
	v := Severity(s)
	if !v.Valid() {
		return SeverityNone, fmt.Errorf("unknown severity: %q", s)
	}
	return v, nil
}

// 字段重要性回退表：按字段名精确匹配。
// 远端严重度服务不可用时，这里是同步可用的唯一事实来源。
var fieldSeverities = map[string]Severity{
	// 直接威胁生命的能力缺失
	"isWaterSufficient":       SeverityCritical,
	"isFoodSufficient":        SeverityCritical,
	"hasFunctionalClinic":     SeverityCritical,
	"isSafeFromViolence":      SeverityCritical,
	"gbvCasesReported":        SeverityCritical,
	"diseaseOutbreakReported": SeverityCritical,

	"hasMedicineSupply":          SeverityHigh,
	"hasMedicalStaff":            SeverityHigh,
	"areLatrinesAvailable":       SeverityHigh,
	"areSheltersSufficient":      SeverityHigh,
	"hasRegularMealAccess":       SeverityHigh,
	"unaccompaniedMinorsPresent": SeverityHigh,

	"hasInfantNutrition":       SeverityMedium,
	"hasHandwashingFacilities": SeverityMedium,
	"hasSolidWasteDisposal":    SeverityMedium,
	"hasBeddingMaterials":      SeverityMedium,
	"hasSecurityPresence":      SeverityMedium,
	"needsTarpaulins":          SeverityMedium,
	"hasMaternalCare":          SeverityMedium,
	"openDefecationObserved":   SeverityMedium,
	"newArrivalsUnregistered":  SeverityMedium,
}

// ResolveSeverity 解析字段严重度。
// 优先级：预计算映射（聚合端点/远端服务下发） > 无缺口哨兵 LOW > 静态回退表。
// 回退表未命中的缺口字段一律按 HIGH 处理。
func ResolveSeverity(field string, gapped bool, precomputed map[string]Severity) Severity {
	if precomputed != nil {
		if s, ok := precomputed[field]; ok && s.Valid() {
			return s
		}
	}
	if !gapped {
		// 调用方约定：hasGap=false 时该返回值不具业务含义
		return SeverityLow
	}
	if s, ok := fieldSeverities[field]; ok {
		return s
	}
	return SeverityHigh
}

// FallbackSeverity 返回静态表中某字段的严重度（未命中返回 HIGH）。
// 供 gap-field-severities 端点在无人工覆写时使用。
func FallbackSeverity(field string) Severity {
	if s, ok := fieldSeverities[field]; ok {
		return s
	}
	return SeverityHigh
}
