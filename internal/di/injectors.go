//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"cpd/internal"
	"cpd/internal/controllers"
	"cpd/internal/planner"
	"cpd/internal/providers"
	"cpd/internal/services"
	"cpd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		planner.NewCompressor,
		services.NewPlannerService,
		services.NewViewService,
		services.NewPromptService,
		planner.NewFileManager,
		planner.NewPersister,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
