package domain

import "github.com/google/uuid"

// CategoryAggregate 单类别的事件级汇总。
// 不变式：EntitiesWithGaps + EntitiesWithoutGaps == TotalEntities，
// 且 CriticalGaps <= EntitiesWithGaps。未提交该类别评估的实体不计入 TotalEntities。
type CategoryAggregate struct {
	TotalEntities       int `json:"totalEntities"`
	EntitiesWithGaps    int `json:"entitiesWithGaps"`
	EntitiesWithoutGaps int `json:"entitiesWithoutGaps"`
	CriticalGaps        int `json:"criticalGaps"`
}

// EntityGapSummary 单实体跨类别的字段级汇总
type EntityGapSummary struct {
	TotalGaps    int `json:"totalGaps"`
	TotalNoGaps  int `json:"totalNoGaps"`
	CriticalGaps int `json:"criticalGaps"`
}

// GapSummary 事件级字段级总计。不变式：CriticalGaps <= TotalGaps
type GapSummary struct {
	TotalGaps    int `json:"totalGaps"`
	CriticalGaps int `json:"criticalGaps"`
}

// AggregatedAssessment 事件级聚合评估：各类别计数加全局缺口总计
type AggregatedAssessment struct {
	Health     CategoryAggregate `json:"health"`
	Food       CategoryAggregate `json:"food"`
	Wash       CategoryAggregate `json:"wash"`
	Shelter    CategoryAggregate `json:"shelter"`
	Security   CategoryAggregate `json:"security"`
	Population CategoryAggregate `json:"population"`
	GapSummary GapSummary        `json:"gapSummary"`
}

// EntityEvaluation 单实体的各类别评估结果；缺失的类别没有条目
type EntityEvaluation struct {
	EntityID   uuid.UUID
	ByCategory map[Category]Evaluation
}

// AggregateCategory 把若干实体在同一类别下的评估折叠为计数。
// 纯计数折叠，满足结合律与交换律，结果与输入顺序无关。
func AggregateCategory(evals []Evaluation) CategoryAggregate {
	agg := CategoryAggregate{TotalEntities: len(evals)}
	for _, ev := range evals {
		if ev.HasGap {
			agg.EntitiesWithGaps++
			if ev.Severity == SeverityCritical {
				agg.CriticalGaps++
			}
		}
	}
	agg.EntitiesWithoutGaps = agg.TotalEntities - agg.EntitiesWithGaps
	return agg
}

// SummarizeEntity 把单实体的全部类别评估折叠为字段级汇总
func SummarizeEntity(evals map[Category]Evaluation) EntityGapSummary {
	var s EntityGapSummary
	for _, ev := range evals {
		for _, r := range ev.PerField {
			if !r.HasGap {
				s.TotalNoGaps++
				continue
			}
			s.TotalGaps++
			if r.Severity == SeverityCritical {
				s.CriticalGaps++
			}
		}
	}
	return s
}

// Aggregate 把全部实体的评估结果汇总为事件级聚合评估
func Aggregate(entities []EntityEvaluation) AggregatedAssessment {
	byCategory := make(map[Category][]Evaluation, len(Categories()))
	var summary GapSummary

	for _, e := range entities {
		for c, ev := range e.ByCategory {
			byCategory[c] = append(byCategory[c], ev)
		}
		es := SummarizeEntity(e.ByCategory)
		summary.TotalGaps += es.TotalGaps
		summary.CriticalGaps += es.CriticalGaps
	}

	return AggregatedAssessment{
		Health:     AggregateCategory(byCategory[CategoryHealth]),
		Food:       AggregateCategory(byCategory[CategoryFood]),
		Wash:       AggregateCategory(byCategory[CategoryWash]),
		Shelter:    AggregateCategory(byCategory[CategoryShelter]),
		Security:   AggregateCategory(byCategory[CategorySecurity]),
		Population: AggregateCategory(byCategory[CategoryPopulation]),
		GapSummary: summary,
	}
}
