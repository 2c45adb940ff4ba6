package usecase

import (
	"context"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
)

// mockOverrideRepo 模拟严重度覆写仓库
type mockOverrideRepo struct {
	overrides map[string]domain.Severity
}

func overrideKey(c domain.Category, field string) string { return string(c) + "/" + field }

func (m *mockOverrideRepo) GetOverride(ctx context.Context, c domain.Category, field string) (domain.Severity, error) {
	if s, ok := m.overrides[overrideKey(c, field)]; ok {
		return s, nil
	}
	return domain.SeverityNone, kerrors.NotFound("OVERRIDE_NOT_FOUND", "no severity override")
}

func (m *mockOverrideRepo) UpsertOverride(ctx context.Context, c domain.Category, field string, s domain.Severity) error {
	if m.overrides == nil {
		m.overrides = map[string]domain.Severity{}
	}
	m.overrides[overrideKey(c, field)] = s
	return nil
}

func TestSeverityResolve_OverrideBeatsStaticTable(t *testing.T) {
	repo := &mockOverrideRepo{}
	uc := NewSeverityUseCase(repo, log.DefaultLogger)
	ctx := context.Background()

	// 无覆写：静态表 isFoodSufficient -> CRITICAL
	s, err := uc.Resolve(ctx, domain.CategoryFood, "isFoodSufficient")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s != domain.SeverityCritical {
		t.Errorf("Resolve() = %v, want CRITICAL from static table", s)
	}

	if err := uc.Override(ctx, domain.CategoryFood, "isFoodSufficient", domain.SeverityMedium); err != nil {
		t.Fatalf("Override() error = %v", err)
	}
	s, err = uc.Resolve(ctx, domain.CategoryFood, "isFoodSufficient")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s != domain.SeverityMedium {
		t.Errorf("Resolve() = %v, want MEDIUM from override", s)
	}
}

func TestSeverityResolve_RejectsUnknownInput(t *testing.T) {
	uc := NewSeverityUseCase(&mockOverrideRepo{}, log.DefaultLogger)
	ctx := context.Background()

	if _, err := uc.Resolve(ctx, domain.Category("NOPE"), "isFoodSufficient"); !kerrors.IsBadRequest(err) {
		t.Errorf("unknown category error = %v, want BadRequest", err)
	}
	if _, err := uc.Resolve(ctx, domain.CategoryFood, "foodSource"); !kerrors.IsNotFound(err) {
		t.Errorf("informational field error = %v, want NotFound", err)
	}
	if err := uc.Override(ctx, domain.CategoryFood, "isFoodSufficient", domain.Severity("EXTREME")); !kerrors.IsBadRequest(err) {
		t.Errorf("invalid severity error = %v, want BadRequest", err)
	}
}
