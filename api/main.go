package api

import (
	"go.uber.org/fx"

	"github.com/medvault-org/medvault/auth"
	"github.com/medvault-org/medvault/authz"
	"github.com/medvault-org/medvault/config"
	"github.com/medvault-org/medvault/documents"
	"github.com/medvault-org/medvault/logger"
	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/patients"
	"github.com/medvault-org/medvault/processor"
	"github.com/medvault-org/medvault/reports"
	"github.com/medvault-org/medvault/store"
	"github.com/medvault-org/medvault/synonyms"
)

// Dependencies is the service dependency graph. CLI commands reuse it to
// run one-shot functions against the same wiring as the server.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			config.NewConfig,
			config.NewThresholds,
			store.NewConfig,
			store.GetConnectionString,
			store.NewClient,
			store.NewDatabase,
			synonyms.NewDefaultExpander,
			matching.NewMatcher,
			patients.NewRepository,
			patients.NewService,
			documents.NewRepository,
			documents.NewService,
			processor.NewProcessor,
			reports.NewGenerator,
			auth.NewConfig,
			auth.NewAuthenticator,
			authz.NewRequestAuthorizer,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	deps := append(
		Dependencies(),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(deps...).Run()
}
