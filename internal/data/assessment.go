package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
)

type assessmentRepo struct {
	data *Data
	log  *log.Helper
}

// NewAssessmentRepo 创建评估记录仓库实现
func NewAssessmentRepo(data *Data, logger log.Logger) repo.AssessmentRepo {
	return &assessmentRepo{data: data, log: log.NewHelper(logger)}
}

func scanAssessment(rows interface {
	Scan(dest ...any) error
}) (*domain.AssessmentRecord, error) {
	var (
		rec     domain.AssessmentRecord
		cat     string
		verif   string
		payload []byte
	)
	if err := rows.Scan(&rec.ID, &rec.IncidentID, &rec.EntityID, &cat,
		&rec.AssessorID, &verif, &rec.AssessedAt, &payload); err != nil {
		return nil, err
	}

	c, err := domain.ParseCategory(cat)
	if err != nil {
		return nil, err
	}
	rec.Category = c
	rec.Verification = domain.VerificationStatus(verif)

	p, err := domain.DecodePayload(c, payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", c, err)
	}
	rec.Payload = p
	return &rec, nil
}

const assessmentColumns = `id, incident_id, entity_id, category, assessor_id, verification, assessed_at, payload`

func (r *assessmentRepo) ListLatest(ctx context.Context, incidentID uuid.UUID, entityID *uuid.UUID) ([]*domain.AssessmentRecord, error) {
	// DISTINCT ON 取每个 (实体, 类别) 的最新一条
	query := `SELECT DISTINCT ON (entity_id, category) ` + assessmentColumns + `
		FROM assessments WHERE incident_id = $1`
	args := []any{incidentID}
	if entityID != nil {
		query += ` AND entity_id = $2`
		args = append(args, *entityID)
	}
	query += ` ORDER BY entity_id, category, assessed_at DESC`

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *assessmentRepo) ListHistory(ctx context.Context, entityID uuid.UUID, category domain.Category, limit int) ([]*domain.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments
		 WHERE entity_id = $1 AND category = $2
		 ORDER BY assessed_at DESC LIMIT $3`,
		entityID, string(category), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *assessmentRepo) Save(ctx context.Context, rec *domain.AssessmentRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.AssessedAt.IsZero() {
		rec.AssessedAt = time.Now()
	}
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return err
	}
	_, err = r.data.db.ExecContext(ctx,
		`INSERT INTO assessments (id, incident_id, entity_id, category, assessor_id, verification, assessed_at, payload)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.IncidentID, rec.EntityID, string(rec.Category),
		rec.AssessorID, string(rec.Verification), rec.AssessedAt, payload)
	return err
}
