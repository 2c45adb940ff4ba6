package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CommitmentStatus 捐助承诺状态
type CommitmentStatus string

const (
	CommitmentPlanned   CommitmentStatus = "PLANNED"
	CommitmentCommitted CommitmentStatus = "COMMITTED"
	CommitmentPartial   CommitmentStatus = "PARTIALLY_DELIVERED"
	CommitmentDelivered CommitmentStatus = "DELIVERED"
)

// Commitment 捐助承诺：某捐助方向事件（或具体实体）承诺的资源
type Commitment struct {
	ID           uuid.UUID        `json:"id"`
	IncidentID   uuid.UUID        `json:"incidentId"`
	EntityID     *uuid.UUID       `json:"entityId,omitempty"`
	Donor        string           `json:"donor"`
	ResourceType string           `json:"resourceType"`
	Quantity     float64          `json:"quantity"`
	Unit         string           `json:"unit"`
	Status       CommitmentStatus `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	Deliveries   []Delivery       `json:"deliveries,omitempty"`
}

// Delivery 承诺项下的一次实际交付
type Delivery struct {
	ID           uuid.UUID `json:"id"`
	CommitmentID uuid.UUID `json:"commitmentId"`
	Quantity     float64   `json:"quantity"`
	Note         string    `json:"note,omitempty"`
	DeliveredAt  time.Time `json:"deliveredAt"`
}

// DeliveredQuantity 累计已交付数量
func (c *Commitment) DeliveredQuantity() float64 {
	var total float64
	for _, d := range c.Deliveries {
		total += d.Quantity
	}
	return total
}

// RecalcStatus 依据交付进度刷新承诺状态（PLANNED 不自动升级）
func (c *Commitment) RecalcStatus() {
	delivered := c.DeliveredQuantity()
	switch {
	case delivered <= 0:
		if c.Status != CommitmentPlanned {
			c.Status = CommitmentCommitted
		}
	case delivered < c.Quantity:
		c.Status = CommitmentPartial
	default:
		c.Status = CommitmentDelivered
	}
}

// Validate 创建前的基础校验
func (c *Commitment) Validate() error {
	if c.Donor == "" {
		return fmt.Errorf("donor is required")
	}
	if c.ResourceType == "" {
		return fmt.Errorf("resourceType is required")
	}
	if c.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	return nil
}

// ResourceSummary 资源维度的承诺/交付对照（resource-management 看板）
type ResourceSummary struct {
	ResourceType string  `json:"resourceType"`
	Unit         string  `json:"unit"`
	Committed    float64 `json:"committed"`
	Delivered    float64 `json:"delivered"`
	Commitments  int     `json:"commitments"`
}
