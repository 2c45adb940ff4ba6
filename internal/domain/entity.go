package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntityKind 受灾单元类型
type EntityKind string

const (
	EntityCommunity EntityKind = "COMMUNITY"
	EntityWard      EntityKind = "WARD"
	EntityCamp      EntityKind = "CAMP"
	EntityFacility  EntityKind = "FACILITY"
)

// Valid 判断单元类型是否合法
func (k EntityKind) Valid() bool {
	switch k {
	case EntityCommunity, EntityWard, EntityCamp, EntityFacility:
		return true
	}
	return false
}

// ParseEntityKind 解析单元类型字符串
func ParseEntityKind(s string) (EntityKind, error) {
	k := EntityKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown entity kind: %q", s)
	}
	return k, nil
}

// Incident 灾情事件：圈定一组受灾实体及其评估
type Incident struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Entity 受灾实体：可被评估、可接收响应的地理/组织单元
type Entity struct {
	ID         uuid.UUID  `json:"id"`
	IncidentID uuid.UUID  `json:"incidentId"`
	Name       string     `json:"name"`
	Kind       EntityKind `json:"kind"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Population int        `json:"population"`
	CreatedAt  time.Time  `json:"createdAt"`
}
