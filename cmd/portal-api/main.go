package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/nyatsime/portal-api/internal/handler"
	"github.com/nyatsime/portal-api/internal/middleware"
	"github.com/nyatsime/portal-api/internal/repository"
	"github.com/nyatsime/portal-api/internal/service"
	"github.com/nyatsime/portal-api/pkg/cache"
	"github.com/nyatsime/portal-api/pkg/config"
	"github.com/nyatsime/portal-api/pkg/database"
	"github.com/nyatsime/portal-api/pkg/logger"
	corsmiddleware "github.com/nyatsime/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/nyatsime/portal-api/pkg/middleware/requestid"
)

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("schema migration failed", "error", err)
	}

	// Redis is optional: without it stats are computed per request.
	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, stats caching disabled", "error", err)
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	validate := validator.New()

	staffRepo := repository.NewStaffRepository(db)
	learnerRepo := repository.NewLearnerRepository(db)
	markRepo := repository.NewMarkRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	textbookRepo := repository.NewTextbookRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)

	allocator := service.NewIDAllocator(sequenceRepo)
	policy := service.NewDomainPolicy(cfg.Registration)

	authSvc := service.NewAuthService(staffRepo, learnerRepo, validate, logr, cfg.Master, cfg.JWT)
	registrationSvc := service.NewRegistrationService(staffRepo, learnerRepo, allocator, policy, validate, logr)
	learnerSvc := service.NewLearnerService(learnerRepo, logr)
	enrollmentSvc := service.NewEnrollmentService(learnerRepo, validate, logr)
	staffSvc := service.NewStaffService(staffRepo, allocator, validate, logr)
	markSvc := service.NewMarkService(markRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, validate, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, validate, logr)
	feeSvc := service.NewFeeService(feeRepo, allocator, validate, logr)
	noticeSvc := service.NewNoticeService(noticeRepo, allocator, validate, logr)
	librarySvc := service.NewLibraryService(textbookRepo, allocator, validate, logr)
	reportSvc := service.NewReportService(learnerRepo, markRepo, attendanceRepo, logr)
	statsSvc := service.NewStatsService(statsRepo, redisClient, cfg.Stats.CacheTTL, logr)
	metricsSvc := service.NewMetricsService()

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Registration: handler.NewRegistrationHandler(registrationSvc),
		Learner:      handler.NewLearnerHandler(learnerSvc, enrollmentSvc),
		Staff:        handler.NewStaffHandler(staffSvc),
		Mark:         handler.NewMarkHandler(markSvc),
		Attendance:   handler.NewAttendanceHandler(attendanceSvc),
		Timetable:    handler.NewTimetableHandler(timetableSvc),
		Fee:          handler.NewFeeHandler(feeSvc),
		Notice:       handler.NewNoticeHandler(noticeSvc),
		Library:      handler.NewLibraryHandler(librarySvc),
		Report:       handler.NewReportHandler(reportSvc),
		Stats:        handler.NewStatsHandler(statsSvc),
		Grade:        handler.NewGradeHandler(),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
