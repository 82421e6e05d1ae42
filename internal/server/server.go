package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/rationbook/internal/announcement"
	announcementdomain "github.com/smallbiznis/rationbook/internal/announcement/domain"
	"github.com/smallbiznis/rationbook/internal/config"
	"github.com/smallbiznis/rationbook/internal/distribution"
	distributiondomain "github.com/smallbiznis/rationbook/internal/distribution/domain"
	"github.com/smallbiznis/rationbook/internal/entitlement"
	"github.com/smallbiznis/rationbook/internal/family"
	familydomain "github.com/smallbiznis/rationbook/internal/family/domain"
	"github.com/smallbiznis/rationbook/internal/grievance"
	grievancedomain "github.com/smallbiznis/rationbook/internal/grievance/domain"
	"github.com/smallbiznis/rationbook/internal/observability"
	obslogger "github.com/smallbiznis/rationbook/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/rationbook/internal/observability/metrics"
	obstracing "github.com/smallbiznis/rationbook/internal/observability/tracing"
	"github.com/smallbiznis/rationbook/internal/providers/storage"
	"github.com/smallbiznis/rationbook/internal/report"
	reportdomain "github.com/smallbiznis/rationbook/internal/report/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	entitlement.Module,
	family.Module,
	distribution.Module,
	report.Module,
	grievance.Module,
	announcement.Module,
	storage.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	familySvc       familydomain.Service
	distributionSvc distributiondomain.Service
	reportSvc       reportdomain.Service
	grievanceSvc    grievancedomain.Service
	announcementSvc announcementdomain.Service
	uploads         storage.Provider
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	FamilySvc       familydomain.Service
	DistributionSvc distributiondomain.Service
	ReportSvc       reportdomain.Service
	GrievanceSvc    grievancedomain.Service
	AnnouncementSvc announcementdomain.Service
	Uploads         storage.Provider
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		familySvc:       p.FamilySvc,
		distributionSvc: p.DistributionSvc,
		reportSvc:       p.ReportSvc,
		grievanceSvc:    p.GrievanceSvc,
		announcementSvc: p.AnnouncementSvc,
		uploads:         p.Uploads,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	s.registerPublicRoutes()
	s.registerAdminRoutes()
	s.registerUploadRoutes()
}

func (s *Server) registerPublicRoutes() {
	api := s.engine.Group("/api")

	// -------- Records --------
	api.POST("/records", s.SubmitRecord)

	// -------- Families --------
	api.GET("/families/public/by-contact/:contactNumber", s.LookupFamilyByContact)

	// -------- Grievances --------
	api.POST("/grievances", s.CreateGrievance)
	api.GET("/grievances/track/:trackingId", s.TrackGrievance)

	// -------- Announcements --------
	api.GET("/announcements", s.ListAnnouncements)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")
	admin.Use(s.AdminAuthRequired())

	admin.GET("/records", s.ListRecords)
	admin.GET("/reports/summary", s.GetReportSummary)

	admin.GET("/families/:id/history", s.GetFamilyHistory)
	admin.PATCH("/families/:id", s.UpdateFamily)

	admin.GET("/grievances", s.ListGrievances)
	admin.PATCH("/grievances/:id/status", s.UpdateGrievanceStatus)
	admin.POST("/grievances/:id/comments", s.AddGrievanceComment)

	admin.GET("/announcements", s.ListAnnouncements)
	admin.POST("/announcements", s.CreateAnnouncement)
	admin.PATCH("/announcements/:id", s.UpdateAnnouncement)
	admin.DELETE("/announcements/:id", s.DeleteAnnouncement)
}

func (s *Server) registerUploadRoutes() {
	if s.cfg.UploadDir == "" || s.cfg.UploadBaseURL == "" {
		return
	}
	s.engine.Static(s.cfg.UploadBaseURL, s.cfg.UploadDir)
}
