//go:build wireinject
// +build wireinject

package di

import (
	"cellar/internal"
	"cellar/internal/catalog"
	"cellar/internal/controllers"
	"cellar/internal/providers"
	"cellar/internal/services"
	"cellar/internal/store"
	"cellar/internal/structures"

	wire "github.com/google/wire"
)

var serviceSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	catalog.NewCatalogProvider,
	store.NewZstdCompressor,
	store.NewFileStore,
	services.NewCellarService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		serviceSet,
		providers.NewInstrumentedCacheProvider,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitService(cfg *structures.CliFlags) (services.CellarServiceInterface, error) {

	wire.Build(serviceSet)

	return nil, nil
}
