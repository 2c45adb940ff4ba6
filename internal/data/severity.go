package data

import (
	"context"
	"database/sql"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
)

type severityOverrideRepo struct {
	data *Data
	log  *log.Helper
}

// NewSeverityOverrideRepo 创建严重度覆写仓库实现
func NewSeverityOverrideRepo(data *Data, logger log.Logger) repo.SeverityOverrideRepo {
	return &severityOverrideRepo{data: data, log: log.NewHelper(logger)}
}

func (r *severityOverrideRepo) GetOverride(ctx context.Context, category domain.Category, field string) (domain.Severity, error) {
	var s string
	err := r.data.db.QueryRowContext(ctx,
		`SELECT severity FROM severity_overrides WHERE category = $1 AND field_name = $2`,
		string(category), field).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SeverityNone, kerrors.NotFound("OVERRIDE_NOT_FOUND", "no severity override")
	}
	if err != nil {
		return domain.SeverityNone, err
	}
	return domain.ParseSeverity(s)
}

func (r *severityOverrideRepo) UpsertOverride(ctx context.Context, category domain.Category, field string, s domain.Severity) error {
	_, err := r.data.db.ExecContext(ctx,
		`INSERT INTO severity_overrides (category, field_name, severity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (category, field_name)
		 DO UPDATE SET severity = EXCLUDED.severity, updated_at = CURRENT_TIMESTAMP`,
		string(category), field, string(s))
	return err
}
