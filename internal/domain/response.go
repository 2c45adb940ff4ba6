package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ResponseStatus 响应计划状态
type ResponseStatus string

const (
	ResponseDraft     ResponseStatus = "DRAFT"
	ResponseActive    ResponseStatus = "ACTIVE"
	ResponseCompleted ResponseStatus = "COMPLETED"
)

// ResponsePlan 响应计划：针对某实体某类别缺口的处置安排
type ResponsePlan struct {
	ID          uuid.UUID      `json:"id"`
	IncidentID  uuid.UUID      `json:"incidentId"`
	EntityID    uuid.UUID      `json:"entityId"`
	Category    Category       `json:"category"`
	Description string         `json:"description"`
	Status      ResponseStatus `json:"status"`
	PlannedAt   time.Time      `json:"plannedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Validate 创建前的基础校验
func (p *ResponsePlan) Validate() error {
	if !p.Category.Valid() {
		return fmt.Errorf("unknown assessment category: %q", p.Category)
	}
	if p.Description == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}
