package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
)

type incidentRepo struct {
	data *Data
	log  *log.Helper
}

// NewIncidentRepo 创建灾情事件仓库实现
func NewIncidentRepo(data *Data, logger log.Logger) repo.IncidentRepo {
	return &incidentRepo{data: data, log: log.NewHelper(logger)}
}

func (r *incidentRepo) ListIncidents(ctx context.Context) ([]*domain.Incident, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, name, type, status, description, occurred_at, created_at
		 FROM incidents ORDER BY occurred_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Incident
	for rows.Next() {
		var in domain.Incident
		if err := rows.Scan(&in.ID, &in.Name, &in.Type, &in.Status,
			&in.Description, &in.OccurredAt, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &in)
	}
	return out, rows.Err()
}

func (r *incidentRepo) GetIncident(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	var in domain.Incident
	err := r.data.db.QueryRowContext(ctx,
		`SELECT id, name, type, status, description, occurred_at, created_at
		 FROM incidents WHERE id = $1`, id).
		Scan(&in.ID, &in.Name, &in.Type, &in.Status, &in.Description, &in.OccurredAt, &in.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kerrors.NotFound("INCIDENT_NOT_FOUND", "incident not found")
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *incidentRepo) CreateIncident(ctx context.Context, in *domain.Incident) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now()
	}
	in.CreatedAt = time.Now()
	_, err := r.data.db.ExecContext(ctx,
		`INSERT INTO incidents (id, name, type, status, description, occurred_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		in.ID, in.Name, in.Type, in.Status, in.Description, in.OccurredAt, in.CreatedAt)
	return err
}

type entityRepo struct {
	data *Data
	log  *log.Helper
}

// NewEntityRepo 创建受灾实体仓库实现
func NewEntityRepo(data *Data, logger log.Logger) repo.EntityRepo {
	return &entityRepo{data: data, log: log.NewHelper(logger)}
}

func (r *entityRepo) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.Entity, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, incident_id, name, kind, latitude, longitude, population, created_at
		 FROM entities WHERE incident_id = $1 ORDER BY name`, incidentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Entity
	for rows.Next() {
		var e domain.Entity
		if err := rows.Scan(&e.ID, &e.IncidentID, &e.Name, &e.Kind,
			&e.Latitude, &e.Longitude, &e.Population, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *entityRepo) GetEntity(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	var e domain.Entity
	err := r.data.db.QueryRowContext(ctx,
		`SELECT id, incident_id, name, kind, latitude, longitude, population, created_at
		 FROM entities WHERE id = $1`, id).
		Scan(&e.ID, &e.IncidentID, &e.Name, &e.Kind, &e.Latitude, &e.Longitude, &e.Population, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kerrors.NotFound("ENTITY_NOT_FOUND", "entity not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entityRepo) CreateEntity(ctx context.Context, e *domain.Entity) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	_, err := r.data.db.ExecContext(ctx,
		`INSERT INTO entities (id, incident_id, name, kind, latitude, longitude, population, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.IncidentID, e.Name, string(e.Kind), e.Latitude, e.Longitude, e.Population, e.CreatedAt)
	return err
}
