package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/situation_dashboard/internal/cache"
	"github.com/iWorld-y/situation_dashboard/internal/data"
	"github.com/iWorld-y/situation_dashboard/internal/service"
	"github.com/iWorld-y/situation_dashboard/internal/severity"
	"github.com/iWorld-y/situation_dashboard/internal/state"
	"github.com/iWorld-y/situation_dashboard/internal/usecase"
)

// ProviderSet 是态势看板服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	data.NewUserRepo,
	data.NewIncidentRepo,
	data.NewEntityRepo,
	data.NewAssessmentRepo,
	data.NewCommitmentRepo,
	data.NewResponseRepo,
	data.NewSeverityOverrideRepo,

	// Shared infrastructure
	cache.New,
	severity.NewClient,
	severity.NewTable,
	state.NewStore,

	// UseCase providers
	usecase.NewDashboardUseCase,
	usecase.NewSeverityUseCase,
	usecase.NewCommitmentUseCase,
	usecase.NewResponseUseCase,
	usecase.NewEntityUseCase,
	usecase.NewUserUseCase,

	// Service providers
	service.NewDashboardService,
)
