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

type commitmentRepo struct {
	data *Data
	log  *log.Helper
}

// NewCommitmentRepo 创建捐助承诺仓库实现
func NewCommitmentRepo(data *Data, logger log.Logger) repo.CommitmentRepo {
	return &commitmentRepo{data: data, log: log.NewHelper(logger)}
}

func (r *commitmentRepo) ListCommitments(ctx context.Context, incidentID uuid.UUID) ([]*domain.Commitment, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, incident_id, entity_id, donor, resource_type, quantity, unit, status, created_at
		 FROM commitments WHERE incident_id = $1 ORDER BY created_at DESC`, incidentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Commitment
	byID := make(map[uuid.UUID]*domain.Commitment)
	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	// 一次性取回事件下全部交付明细，再按承诺归并
	drows, err := r.data.db.QueryContext(ctx,
		`SELECT d.id, d.commitment_id, d.quantity, d.note, d.delivered_at
		 FROM deliveries d JOIN commitments c ON c.id = d.commitment_id
		 WHERE c.incident_id = $1 ORDER BY d.delivered_at`, incidentID)
	if err != nil {
		return nil, err
	}
	defer drows.Close()

	for drows.Next() {
		var d domain.Delivery
		if err := drows.Scan(&d.ID, &d.CommitmentID, &d.Quantity, &d.Note, &d.DeliveredAt); err != nil {
			return nil, err
		}
		if c, ok := byID[d.CommitmentID]; ok {
			c.Deliveries = append(c.Deliveries, d)
		}
	}
	return out, drows.Err()
}

func scanCommitment(rows interface {
	Scan(dest ...any) error
}) (*domain.Commitment, error) {
	var (
		c        domain.Commitment
		entityID uuid.NullUUID
		status   string
	)
	if err := rows.Scan(&c.ID, &c.IncidentID, &entityID, &c.Donor,
		&c.ResourceType, &c.Quantity, &c.Unit, &status, &c.CreatedAt); err != nil {
		return nil, err
	}
	if entityID.Valid {
		c.EntityID = &entityID.UUID
	}
	c.Status = domain.CommitmentStatus(status)
	return &c, nil
}

func (r *commitmentRepo) GetCommitment(ctx context.Context, id uuid.UUID) (*domain.Commitment, error) {
	row := r.data.db.QueryRowContext(ctx,
		`SELECT id, incident_id, entity_id, donor, resource_type, quantity, unit, status, created_at
		 FROM commitments WHERE id = $1`, id)
	c, err := scanCommitment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kerrors.NotFound("COMMITMENT_NOT_FOUND", "commitment not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, commitment_id, quantity, note, delivered_at
		 FROM deliveries WHERE commitment_id = $1 ORDER BY delivered_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.Delivery
		if err := rows.Scan(&d.ID, &d.CommitmentID, &d.Quantity, &d.Note, &d.DeliveredAt); err != nil {
			return nil, err
		}
		c.Deliveries = append(c.Deliveries, d)
	}
	return c, rows.Err()
}

func (r *commitmentRepo) CreateCommitment(ctx context.Context, c *domain.Commitment) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = domain.CommitmentCommitted
	}
	c.CreatedAt = time.Now()

	var entityID any
	if c.EntityID != nil {
		entityID = *c.EntityID
	}
	_, err := r.data.db.ExecContext(ctx,
		`INSERT INTO commitments (id, incident_id, entity_id, donor, resource_type, quantity, unit, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.IncidentID, entityID, c.Donor, c.ResourceType, c.Quantity, c.Unit, string(c.Status), c.CreatedAt)
	return err
}

func (r *commitmentRepo) AddDelivery(ctx context.Context, d *domain.Delivery) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.DeliveredAt.IsZero() {
		d.DeliveredAt = time.Now()
	}

	tx, err := r.data.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO deliveries (id, commitment_id, quantity, note, delivered_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.CommitmentID, d.Quantity, d.Note, d.DeliveredAt); err != nil {
		return err
	}

	// 在事务内重算承诺状态
	var committed, delivered float64
	var status string
	if err := tx.QueryRowContext(ctx,
		`SELECT c.quantity, c.status, COALESCE(SUM(d.quantity), 0)
		 FROM commitments c LEFT JOIN deliveries d ON d.commitment_id = c.id
		 WHERE c.id = $1 GROUP BY c.id`, d.CommitmentID).
		Scan(&committed, &status, &delivered); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kerrors.NotFound("COMMITMENT_NOT_FOUND", "commitment not found")
		}
		return err
	}

	c := domain.Commitment{Quantity: committed, Status: domain.CommitmentStatus(status),
		Deliveries: []domain.Delivery{{Quantity: delivered}}}
	c.RecalcStatus()

	if _, err := tx.ExecContext(ctx,
		`UPDATE commitments SET status = $1 WHERE id = $2`,
		string(c.Status), d.CommitmentID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *commitmentRepo) ResourceSummary(ctx context.Context, incidentID uuid.UUID) ([]*domain.ResourceSummary, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT c.resource_type, MIN(c.unit), SUM(c.quantity),
		        COALESCE(SUM(dq.total), 0), COUNT(c.id)
		 FROM commitments c
		 LEFT JOIN (
			SELECT commitment_id, SUM(quantity) AS total
			FROM deliveries GROUP BY commitment_id
		 ) dq ON dq.commitment_id = c.id
		 WHERE c.incident_id = $1
		 GROUP BY c.resource_type
		 ORDER BY c.resource_type`, incidentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ResourceSummary
	for rows.Next() {
		var s domain.ResourceSummary
		if err := rows.Scan(&s.ResourceType, &s.Unit, &s.Committed, &s.Delivered, &s.Commitments); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
