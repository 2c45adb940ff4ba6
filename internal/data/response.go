package data

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
)

type responseRepo struct {
	data *Data
	log  *log.Helper
}

// NewResponseRepo 创建响应计划仓库实现
func NewResponseRepo(data *Data, logger log.Logger) repo.ResponseRepo {
	return &responseRepo{data: data, log: log.NewHelper(logger)}
}

func (r *responseRepo) ListResponses(ctx context.Context, incidentID uuid.UUID, entityID *uuid.UUID) ([]*domain.ResponsePlan, error) {
	query := `SELECT id, incident_id, entity_id, category, description, status, planned_at, created_at
		FROM response_plans WHERE incident_id = $1`
	args := []any{incidentID}
	if entityID != nil {
		query += ` AND entity_id = $2`
		args = append(args, *entityID)
	}
	query += ` ORDER BY planned_at DESC`

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ResponsePlan
	for rows.Next() {
		var (
			p        domain.ResponsePlan
			category string
			status   string
		)
		if err := rows.Scan(&p.ID, &p.IncidentID, &p.EntityID, &category,
			&p.Description, &status, &p.PlannedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Category = domain.Category(category)
		p.Status = domain.ResponseStatus(status)
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *responseRepo) CreateResponse(ctx context.Context, p *domain.ResponsePlan) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = domain.ResponseDraft
	}
	if p.PlannedAt.IsZero() {
		p.PlannedAt = time.Now()
	}
	p.CreatedAt = time.Now()
	_, err := r.data.db.ExecContext(ctx,
		`INSERT INTO response_plans (id, incident_id, entity_id, category, description, status, planned_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.IncidentID, p.EntityID, string(p.Category), p.Description,
		string(p.Status), p.PlannedAt, p.CreatedAt)
	return err
}
