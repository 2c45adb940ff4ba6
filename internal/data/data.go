package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/situation_dashboard/internal/conf"
)

// Data 共享数据库句柄
type Data struct {
	db *sql.DB
}

// NewData 打开数据库连接并初始化全部表结构
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}

	// Init schema
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS incidents (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS entities (
			id UUID PRIMARY KEY,
			incident_id UUID NOT NULL REFERENCES incidents(id),
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			population INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS assessments (
			id UUID PRIMARY KEY,
			incident_id UUID NOT NULL REFERENCES incidents(id),
			entity_id UUID NOT NULL REFERENCES entities(id),
			category TEXT NOT NULL,
			assessor_id TEXT NOT NULL DEFAULT '',
			verification TEXT NOT NULL DEFAULT 'PENDING',
			assessed_at TIMESTAMPTZ NOT NULL,
			payload JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_latest
			ON assessments (entity_id, category, assessed_at DESC)`,
		`CREATE TABLE IF NOT EXISTS commitments (
			id UUID PRIMARY KEY,
			incident_id UUID NOT NULL REFERENCES incidents(id),
			entity_id UUID REFERENCES entities(id),
			donor TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			id UUID PRIMARY KEY,
			commitment_id UUID NOT NULL REFERENCES commitments(id),
			quantity DOUBLE PRECISION NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			delivered_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS response_plans (
			id UUID PRIMARY KEY,
			incident_id UUID NOT NULL REFERENCES incidents(id),
			entity_id UUID NOT NULL REFERENCES entities(id),
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL,
			planned_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS severity_overrides (
			category TEXT NOT NULL,
			field_name TEXT NOT NULL,
			severity TEXT NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (category, field_name)
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to init schema: %w", err)
		}
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}
