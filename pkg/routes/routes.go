package pkg

import (
	"context"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"CampusPlanner/internal/activity"
	"CampusPlanner/internal/config"
	"CampusPlanner/internal/export"
	"CampusPlanner/internal/registry"
	"CampusPlanner/internal/schedule"
	"CampusPlanner/pkg/middleware"
)

var EchoModules = fx.Module("echo",
	fx.Provide(config.NewLogger),
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(activity.NewActivityRepository),
	fx.Provide(activity.NewActivityService),
	fx.Provide(activity.NewActivityHandler),
	fx.Provide(registry.NewRegistryRepository),
	fx.Provide(registry.NewRegistryService),
	fx.Provide(registry.NewRegistryHandler),
	fx.Provide(schedule.NewScheduleRepository),
	fx.Provide(func(repo *registry.RegistryRepository) *schedule.Resolver {
		return schedule.NewResolver(repo)
	}),
	fx.Provide(schedule.NewScheduleService),
	fx.Provide(schedule.NewScheduleHandler),
	fx.Provide(export.NewExportService),
	fx.Provide(export.NewExportHandler),
	fx.Invoke(EnsureIndexes),
	fx.Invoke(RegisterRoutes),
)

func NewEchoServer(lc fx.Lifecycle, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Server starting", zap.String("addr", addr))
			go func() {
				if err := e.Start(addr); err != nil {
					logger.Error("Server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

// EnsureIndexes creates the unique (cycleMaster, semester) index at startup
// so the one-schedule-per-pair invariant is enforced by storage rather than
// by a racy find-then-insert.
func EnsureIndexes(lc fx.Lifecycle, schedules *schedule.ScheduleRepository, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := schedules.EnsureIndexes(ctx); err != nil {
				return err
			}
			logger.Info("Unique index on (cycleMaster, semester) ensured")
			return nil
		},
	})
}

func RegisterRoutes(
	e *echo.Echo,
	scheduleHandler *schedule.ScheduleHandler,
	registryHandler *registry.RegistryHandler,
	exportHandler *export.ExportHandler,
	activityHandler *activity.ActivityHandler,
) {
	api := e.Group("/api")
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.CasbinMiddleware)

	api.GET("/schedules", scheduleHandler.List)
	api.POST("/schedules", scheduleHandler.Create)
	api.GET("/schedules/:id", scheduleHandler.Get)
	api.PUT("/schedules/:id", scheduleHandler.Update)
	api.DELETE("/schedules/:id", scheduleHandler.Delete)
	api.GET("/schedules/:id/pdf", exportHandler.SchedulePDF)

	api.GET("/modules", registryHandler.ListModules)
	api.POST("/modules", registryHandler.CreateModule)
	api.PUT("/modules", registryHandler.UpdateModule)
	api.DELETE("/modules/:id", registryHandler.DeleteModule)

	api.GET("/professors", registryHandler.ListProfessors)
	api.POST("/professors", registryHandler.CreateProfessor)

	api.GET("/cycle-masters", registryHandler.ListCycleMasters)
	api.POST("/cycle-masters", registryHandler.CreateCycleMaster)

	api.GET("/semesters", registryHandler.ListSemesters)
	api.POST("/semesters", registryHandler.CreateSemester)

	api.GET("/documents/generate", exportHandler.CycleReport)
	api.GET("/pdf/:id", exportHandler.CachedPDF)

	api.GET("/logs", activityHandler.List)
}
