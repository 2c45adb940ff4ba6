package service

import (
	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// credentialsRequest 注册/登录请求
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register 用户注册
func (s *DashboardService) Register(ctx khttp.Context) error {
	var req credentialsRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}
	if err := s.ucUser.Register(ctx, req.Username, req.Password); err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, map[string]string{"username": req.Username})
}

// Login 用户登录，成功返回 Bearer Token
func (s *DashboardService) Login(ctx khttp.Context) error {
	var req credentialsRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, errors.BadRequest("INVALID_BODY", "malformed request body"))
	}
	token, err := s.ucUser.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(ctx, err)
	}
	return ok(ctx, map[string]string{"token": token})
}
