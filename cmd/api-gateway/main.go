package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lesson-calendar-api/api/swagger"
	"github.com/noah-isme/lesson-calendar-api/internal/catalog"
	"github.com/noah-isme/lesson-calendar-api/internal/grid"
	"github.com/noah-isme/lesson-calendar-api/internal/handler"
	"github.com/noah-isme/lesson-calendar-api/internal/ics"
	internalmiddleware "github.com/noah-isme/lesson-calendar-api/internal/middleware"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/internal/repository"
	"github.com/noah-isme/lesson-calendar-api/internal/service"
	"github.com/noah-isme/lesson-calendar-api/internal/timegrid"
	"github.com/noah-isme/lesson-calendar-api/pkg/cache"
	"github.com/noah-isme/lesson-calendar-api/pkg/config"
	"github.com/noah-isme/lesson-calendar-api/pkg/database"
	"github.com/noah-isme/lesson-calendar-api/pkg/jobs"
	"github.com/noah-isme/lesson-calendar-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lesson-calendar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lesson-calendar-api/pkg/middleware/requestid"
)

// @title Lesson Calendar API
// @version 1.0.0
// @description Weekly lesson schedule for a two-location school, with day grids and calendar exports
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		logr.Fatal("invalid calendar timezone", zap.String("timezone", cfg.Calendar.Timezone), zap.Error(err))
	}
	cat, err := catalog.Load(cfg.Calendar.CatalogPath)
	if err != nil {
		logr.Fatal("failed to load catalog", zap.Error(err))
	}
	window, err := timegrid.NewWindow(cfg.Calendar.WindowStart, cfg.Calendar.WindowEnd, cfg.Calendar.SlotMinutes)
	if err != nil {
		logr.Fatal("invalid calendar window", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("failed to apply schema", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, lesson cache disabled", zap.Error(err))
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	lessonRepo := repository.NewLessonRepository(db)
	adjustmentRepo := repository.NewAdjustmentRepository(db)
	userRepo := repository.NewUserRepository(db)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheRepo.Available())
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	lessonSvc := service.NewLessonService(lessonRepo, cat, cacheSvc, validate, logr)
	engine := grid.NewEngine(window, cat.Normalizer())
	daySvc := service.NewDayViewService(lessonSvc, adjustmentRepo, cat, engine, metrics, loc, logr)
	exporter := ics.NewExporter(ics.Options{
		Horizon:      time.Duration(cfg.Export.HorizonWeeks) * 7 * 24 * time.Hour,
		Location:     loc,
		ProductID:    cfg.Export.ProductID,
		UIDDomain:    cfg.Export.UIDDomain,
		CalendarName: cfg.Export.CalendarName,
	})
	exportSvc := service.NewCalendarExportService(lessonSvc, daySvc, cat, exporter, metrics, logr)
	adjustmentSvc := service.NewAdjustmentService(adjustmentRepo, lessonRepo, cat, validate, logr)

	queue := jobs.NewQueue("housekeeping", jobs.QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: 30 * time.Second, Logger: logr})
	var housekeeping *service.HousekeepingService
	if cfg.Housekeeping.Enabled {
		housekeeping, err = service.NewHousekeepingService(adjustmentRepo, queue, service.HousekeepingConfig{
			Schedule:      cfg.Housekeeping.Schedule,
			RetentionDays: cfg.Housekeeping.RetentionDays,
			Location:      loc,
		}, metrics, logr)
		if err != nil {
			logr.Fatal("invalid housekeeping configuration", zap.Error(err))
		}
		queue.Start(ctx)
		if err := housekeeping.Start(); err != nil {
			logr.Fatal("failed to start housekeeping", zap.Error(err))
		}
	}

	checks := map[string]handler.ReadinessCheck{
		"database": func(ctx context.Context) error { return db.PingContext(ctx) },
	}
	if cacheRepo.Available() {
		checks["redis"] = cacheRepo.Ping
	}

	locations := cat.Locations()
	router := newRouter(cfg, logr, routes{
		metrics:     handler.NewMetricsHandler(metrics, checks),
		metricsSvc:  metrics,
		auth:        handler.NewAuthHandler(authSvc, cfg.Session),
		authSvc:     authSvc,
		lessons:     handler.NewLessonHandler(lessonSvc),
		calendar:    handler.NewCalendarHandler(daySvc, exportSvc, locations[0].ID),
		catalog:     handler.NewCatalogHandler(cat),
		adjustments: handler.NewAdjustmentHandler(adjustmentSvc),
		audit:       userRepo,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	if housekeeping != nil {
		housekeeping.Stop()
		queue.Stop()
	}
}

type routes struct {
	metrics     *handler.MetricsHandler
	metricsSvc  *service.MetricsService
	auth        *handler.AuthHandler
	authSvc     *service.AuthService
	lessons     *handler.LessonHandler
	calendar    *handler.CalendarHandler
	catalog     *handler.CatalogHandler
	adjustments *handler.AdjustmentHandler
	audit       internalmiddleware.AuditRecorder
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(h.metricsSvc))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	cookie := cfg.Session.CookieName
	requireAuth := internalmiddleware.JWT(h.authSvc, cookie)
	optionalAuth := internalmiddleware.OptionalJWT(h.authSvc, cookie)
	audit := func(action, resource string) gin.HandlerFunc {
		return internalmiddleware.Audit(h.audit, logr, action, resource)
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", h.auth.Login)
	auth.POST("/logout", optionalAuth, h.auth.Logout)
	auth.GET("/me", optionalAuth, h.auth.Me)

	api.GET("/catalog", h.catalog.Get)

	lessons := api.Group("/lessons")
	lessons.GET("", h.lessons.List)
	lessons.GET("/:id", h.lessons.Get)
	lessons.POST("", requireAuth, audit(models.AuditActionCreate, "lesson"), h.lessons.Create)
	lessons.PUT("/:id", requireAuth, audit(models.AuditActionUpdate, "lesson"), h.lessons.Update)
	lessons.DELETE("/:id", requireAuth, audit(models.AuditActionDelete, "lesson"), h.lessons.Delete)

	calendar := api.Group("/calendar")
	calendar.GET("/day", optionalAuth, h.calendar.Day)
	calendar.GET("/day/export", h.calendar.DayExport)
	calendar.GET("/export.ics", h.calendar.ICS)

	absences := api.Group("/absences")
	absences.GET("", h.adjustments.ListAbsences)
	absences.POST("", requireAuth, audit(models.AuditActionCreate, "absence"), h.adjustments.CreateAbsence)
	absences.PUT("/:id", requireAuth, audit(models.AuditActionUpdate, "absence"), h.adjustments.UpdateAbsence)
	absences.DELETE("/:id", requireAuth, audit(models.AuditActionDelete, "absence"), h.adjustments.DeleteAbsence)

	makeups := api.Group("/makeups")
	makeups.GET("", h.adjustments.ListMakeups)
	makeups.POST("", requireAuth, audit(models.AuditActionCreate, "makeup"), h.adjustments.CreateMakeup)
	makeups.PUT("/:id", requireAuth, audit(models.AuditActionUpdate, "makeup"), h.adjustments.UpdateMakeup)
	makeups.DELETE("/:id", requireAuth, audit(models.AuditActionDelete, "makeup"), h.adjustments.DeleteMakeup)

	changes := api.Group("/classroom-changes")
	changes.GET("", h.adjustments.ListClassroomChanges)
	changes.POST("", requireAuth, audit(models.AuditActionCreate, "classroom_change"), h.adjustments.CreateClassroomChange)
	changes.PUT("/:id", requireAuth, audit(models.AuditActionUpdate, "classroom_change"), h.adjustments.UpdateClassroomChange)
	changes.DELETE("/:id", requireAuth, audit(models.AuditActionDelete, "classroom_change"), h.adjustments.DeleteClassroomChange)

	return r
}
