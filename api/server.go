package api

import (
	"context"
	"fmt"

	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/medvault-org/medvault/auth"
	"github.com/medvault-org/medvault/authz"
	"github.com/medvault-org/medvault/config"
	"github.com/medvault-org/medvault/errors"
)

func Start(e *echo.Echo, cfg *config.Config, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(fmt.Sprintf(":%d", cfg.HttpPort)); err != nil {
					fmt.Println(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// It's important this is set after mongo is initialized, which is ensured
			// by taking a dependency on mongo in the constructor, because lifecycle hooks
			// are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

func NewServer(handler *Handler, healthCheck *HealthCheck, authorizer authz.RequestAuthorizer, authenticator auth.Authenticator, zapLogger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// Skip auth and authorization for the readiness probe
	skipper := RouteSkipper([]string{"/ready"})
	authMiddleware := auth.NewAuthMiddleware(authenticator, auth.AuthMiddlewareOpts{
		Skipper: skipper,
	})
	authzMiddleware := authz.NewAuthzMiddleware(authorizer, authz.AuthzMiddlewareOpts{
		Skipper: skipper,
	})

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(zapLogger))
	e.Use(authMiddleware)
	e.Use(authzMiddleware)

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	RegisterHandlers(e, handler)

	return e, nil
}

func RegisterHandlers(e *echo.Echo, handler *Handler) {
	users := e.Group("/v1/users/:userId")

	users.GET("/patients", handler.ListPatients)
	users.POST("/patients", handler.CreatePatient)
	users.GET("/patients/:patientId", handler.GetPatient)
	users.PUT("/patients/:patientId", handler.UpdatePatient)
	users.DELETE("/patients/:patientId", handler.DeletePatient)
	users.POST("/patients/:patientId/aliases", handler.AddPatientAlias)
	users.DELETE("/patients/:patientId/aliases/:alias", handler.RemovePatientAlias)

	users.GET("/documents", handler.ListDocuments)
	users.POST("/documents", handler.CreateDocument)
	users.GET("/documents/search", handler.SearchDocuments)
	users.GET("/documents/:documentId", handler.GetDocument)
	users.DELETE("/documents/:documentId", handler.DeleteDocument)
	users.POST("/documents/:documentId/tags", handler.AddDocumentTag)
	users.DELETE("/documents/:documentId/tags/:tag", handler.RemoveDocumentTag)

	users.POST("/documents/:documentId/resolve", handler.ResolveDocument)
	users.POST("/documents/:documentId/confirm", handler.ConfirmDocumentPatient)
	users.POST("/documents/:documentId/cancel", handler.CancelDocumentConfirmation)

	users.POST("/matches", handler.MatchPatients)
	users.GET("/reports/archive", handler.GetArchiveReport)
}
