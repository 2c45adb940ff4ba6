package domain

// GapResult 单个字段的缺口判定结果。
// HasGap=false 时 Severity 恒为 SeverityNone，绝不复用 LOW 哨兵。
type GapResult struct {
	HasGap   bool     `json:"hasGap"`
	Severity Severity `json:"severity,omitempty"`
}

// Evaluation 单个实体在单个类别下的缺口评估。
// 类别级 HasGap 是各字段结果的逻辑或；Severity 取有缺口字段的最高严重度，
// 无缺口时为 SeverityNone（UI 据此渲染「No Gaps」而非严重度徽标）。
type Evaluation struct {
	Category Category             `json:"category"`
	PerField map[string]GapResult `json:"perField"`
	HasGap   bool                 `json:"hasGap"`
	Severity Severity             `json:"severity,omitempty"`
}

// Evaluate 对一条评估记录做缺口判定。
// 规则：hasGap = invert ? value : !value；载荷中缺失的键按 false 处理。
// 记录本身缺失时不应调用本函数——调用方须渲染「Assessment Missing」状态。
func Evaluate(rec *AssessmentRecord, entry CatalogEntry, precomputed map[string]Severity) Evaluation {
	ev := Evaluation{
		Category: entry.Category,
		PerField: make(map[string]GapResult, len(entry.GapIndicators)),
		Severity: SeverityNone,
	}

	for _, f := range entry.GapIndicators {
		value := false
		if rec.Payload != nil {
			if v, ok := rec.Payload.BoolField(f.Key); ok {
				value = v
			}
		}

		gapped := !value
		if f.Invert {
			gapped = value
		}

		r := GapResult{HasGap: gapped}
		if gapped {
			r.Severity = ResolveSeverity(f.Key, true, precomputed)
			ev.HasGap = true
			ev.Severity = MaxSeverity(ev.Severity, r.Severity)
		}
		ev.PerField[f.Key] = r
	}

	return ev
}
