package service

import (
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/situation_dashboard/internal/state"
	"github.com/iWorld-y/situation_dashboard/internal/usecase"
)

// DashboardService 态势看板 HTTP 服务
type DashboardService struct {
	ucDashboard  *usecase.DashboardUseCase
	ucSeverity   *usecase.SeverityUseCase
	ucCommitment *usecase.CommitmentUseCase
	ucResponse   *usecase.ResponseUseCase
	ucEntity     *usecase.EntityUseCase
	ucUser       *usecase.UserUseCase
	selection    *state.Store
	log          *log.Helper
}

// NewDashboardService 创建态势看板服务实例
func NewDashboardService(
	ucDashboard *usecase.DashboardUseCase,
	ucSeverity *usecase.SeverityUseCase,
	ucCommitment *usecase.CommitmentUseCase,
	ucResponse *usecase.ResponseUseCase,
	ucEntity *usecase.EntityUseCase,
	ucUser *usecase.UserUseCase,
	selection *state.Store,
	logger log.Logger,
) *DashboardService {
	return &DashboardService{
		ucDashboard:  ucDashboard,
		ucSeverity:   ucSeverity,
		ucCommitment: ucCommitment,
		ucResponse:   ucResponse,
		ucEntity:     ucEntity,
		ucUser:       ucUser,
		selection:    selection,
		log:          log.NewHelper(logger),
	}
}

// UserUseCase 暴露给鉴权过滤器
func (s *DashboardService) UserUseCase() *usecase.UserUseCase { return s.ucUser }

// reply 统一响应信封
type reply struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ok 成功响应
func ok(ctx khttp.Context, data any) error {
	return ctx.Result(200, reply{Success: true, Data: data})
}

// fail 业务失败：2xx + success=false，错误信息原样透出
func fail(ctx khttp.Context, err error) error {
	se := errors.FromError(err)
	return ctx.Result(200, reply{Success: false, Error: se.Message})
}

// queryUUID 从查询参数解析 UUID；缺省返回 nil
func queryUUID(ctx khttp.Context, name string) (*uuid.UUID, error) {
	raw := ctx.Query().Get(name)
	if raw == "" || raw == "all" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.BadRequest("INVALID_ID", name+" is not a valid id")
	}
	return &id, nil
}

// RegisterHTTP 注册全部路由；authFilter 作用于写操作及资源管理端点
func (s *DashboardService) RegisterHTTP(srv *khttp.Server, authFilter khttp.FilterFunc) {
	pub := srv.Route("/api/v1")
	pub.GET("/dashboard/situation", s.GetSituation)
	pub.GET("/dashboard/aggregation", s.GetAggregation)
	pub.GET("/gap-field-severities", s.GetFieldSeverity)
	pub.POST("/auth/register", s.Register)
	pub.POST("/auth/login", s.Login)

	sec := srv.Route("/api/v1", authFilter)
	sec.GET("/dashboard/selection", s.GetSelection)
	sec.POST("/dashboard/selection", s.UpdateSelection)
	sec.GET("/dashboard/resource-management/summary", s.GetResourceSummary)
	sec.GET("/incidents", s.ListIncidents)
	sec.POST("/incidents", s.CreateIncident)
	sec.GET("/entities", s.ListEntities)
	sec.POST("/entities", s.CreateEntity)
	sec.POST("/entities/{id}/assessments", s.SubmitAssessment)
	sec.GET("/commitments", s.ListCommitments)
	sec.POST("/commitments", s.CreateCommitment)
	sec.GET("/commitments/{id}", s.GetCommitment)
	sec.POST("/commitments/{id}/deliver", s.DeliverCommitment)
	sec.GET("/responses", s.ListResponses)
	sec.POST("/responses", s.CreateResponse)
	sec.PUT("/gap-field-severities", s.OverrideFieldSeverity)
}
