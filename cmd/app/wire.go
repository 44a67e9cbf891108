//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/popslsls21/CServices/internal/bootstrap"
	"github.com/popslsls21/CServices/internal/domain/analysis"
	"github.com/popslsls21/CServices/internal/infra/config"
	httpiface "github.com/popslsls21/CServices/internal/interface/http"
	"github.com/popslsls21/CServices/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDiagnosisConfig,
		provideGeminiClient,
		provideAdapter,
		provideCatalogRepository,
		provideReportStore,
		provideMatcher,
		provideDiagnosisService,
		provideSynthesizer,
		analysis.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
