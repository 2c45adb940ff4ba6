// Package repo 定义业务层依赖的仓库接口；具体实现在 internal/data。
package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
)

// AssessmentRepo 评估记录仓库
type AssessmentRepo interface {
	// ListLatest 返回事件下每个 (实体, 类别) 的最新一条记录；entityID 非空时只取该实体
	ListLatest(ctx context.Context, incidentID uuid.UUID, entityID *uuid.UUID) ([]*domain.AssessmentRecord, error)
	// ListHistory 返回某实体某类别的历史记录，按评估时间倒序，最多 limit 条
	ListHistory(ctx context.Context, entityID uuid.UUID, category domain.Category, limit int) ([]*domain.AssessmentRecord, error)
	// Save 写入一条评估记录
	Save(ctx context.Context, rec *domain.AssessmentRecord) error
}

// IncidentRepo 灾情事件仓库
type IncidentRepo interface {
	// ListIncidents 返回全部事件，按发生时间倒序
	ListIncidents(ctx context.Context) ([]*domain.Incident, error)
	// GetIncident 按 ID 取事件
	GetIncident(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	// CreateIncident 创建事件
	CreateIncident(ctx context.Context, in *domain.Incident) error
}

// EntityRepo 受灾实体仓库
type EntityRepo interface {
	// ListByIncident 返回事件下全部实体
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.Entity, error)
	// GetEntity 按 ID 取实体
	GetEntity(ctx context.Context, id uuid.UUID) (*domain.Entity, error)
	// CreateEntity 创建实体
	CreateEntity(ctx context.Context, e *domain.Entity) error
}

// CommitmentRepo 捐助承诺仓库
type CommitmentRepo interface {
	// ListCommitments 返回事件下全部承诺（含交付明细）
	ListCommitments(ctx context.Context, incidentID uuid.UUID) ([]*domain.Commitment, error)
	// GetCommitment 按 ID 取承诺（含交付明细）
	GetCommitment(ctx context.Context, id uuid.UUID) (*domain.Commitment, error)
	// CreateCommitment 创建承诺
	CreateCommitment(ctx context.Context, c *domain.Commitment) error
	// AddDelivery 记录一次交付并刷新承诺状态
	AddDelivery(ctx context.Context, d *domain.Delivery) error
	// ResourceSummary 按资源类型汇总承诺/交付数量
	ResourceSummary(ctx context.Context, incidentID uuid.UUID) ([]*domain.ResourceSummary, error)
}

// ResponseRepo 响应计划仓库
type ResponseRepo interface {
	// ListResponses 返回事件下的响应计划；entityID 非空时只取该实体
	ListResponses(ctx context.Context, incidentID uuid.UUID, entityID *uuid.UUID) ([]*domain.ResponsePlan, error)
	// CreateResponse 创建响应计划
	CreateResponse(ctx context.Context, p *domain.ResponsePlan) error
}

// UserRepo 用户仓库
type UserRepo interface {
	// CreateUser 创建用户
	CreateUser(ctx context.Context, u *domain.User) error
	// GetUserByUsername 根据用户名获取用户
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SeverityOverrideRepo 字段严重度人工覆写仓库
type SeverityOverrideRepo interface {
	// GetOverride 取某字段的覆写值；无覆写时返回 kratos NotFound
	GetOverride(ctx context.Context, category domain.Category, field string) (domain.Severity, error)
	// UpsertOverride 写入/更新覆写值
	UpsertOverride(ctx context.Context, category domain.Category, field string, s domain.Severity) error
}
