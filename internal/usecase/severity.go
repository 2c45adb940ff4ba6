package usecase

import (
	"context"
	"fmt"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/situation_dashboard/internal/domain"
	"github.com/iWorld-y/situation_dashboard/internal/repo"
)

// SeverityUseCase 字段严重度查询业务逻辑（gap-field-severities 端点）
type SeverityUseCase struct {
	overrides repo.SeverityOverrideRepo
	log       *log.Helper
}

// NewSeverityUseCase 创建字段严重度业务逻辑实例
func NewSeverityUseCase(overrides repo.SeverityOverrideRepo, logger log.Logger) *SeverityUseCase {
	return &SeverityUseCase{overrides: overrides, log: log.NewHelper(logger)}
}

// Resolve 返回某缺口指标字段的严重度：人工覆写优先，否则静态表。
// 覆写库查询失败（含无覆写）只降级、不报错
func (uc *SeverityUseCase) Resolve(ctx context.Context, category domain.Category, field string) (domain.Severity, error) {
	if !category.Valid() {
		return domain.SeverityNone, kerrors.BadRequest("INVALID_CATEGORY", fmt.Sprintf("unknown assessment category: %q", category))
	}
	if _, ok := domain.GapField(category, field); !ok {
		return domain.SeverityNone, kerrors.NotFound("FIELD_NOT_FOUND", fmt.Sprintf("%s has no gap indicator %q", category, field))
	}

	if s, err := uc.overrides.GetOverride(ctx, category, field); err == nil {
		return s, nil
	} else if !kerrors.IsNotFound(err) {
		uc.log.Warnf("severity override lookup failed for %s/%s: %v", category, field, err)
	}
	return domain.FallbackSeverity(field), nil
}

// Override 写入人工覆写值
func (uc *SeverityUseCase) Override(ctx context.Context, category domain.Category, field string, s domain.Severity) error {
	if !category.Valid() {
		return kerrors.BadRequest("INVALID_CATEGORY", fmt.Sprintf("unknown assessment category: %q", category))
	}
	if _, ok := domain.GapField(category, field); !ok {
		return kerrors.NotFound("FIELD_NOT_FOUND", fmt.Sprintf("%s has no gap indicator %q", category, field))
	}
	if !s.Valid() {
		return kerrors.BadRequest("INVALID_SEVERITY", fmt.Sprintf("unknown severity: %q", s))
	}
	return uc.overrides.UpsertOverride(ctx, category, field, s)
}
