package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/veioenza/seqr/internal/metrics"
	"github.com/veioenza/seqr/internal/middleware"
)

type RouterConfig struct {
	Log              *zap.Logger
	Metrics          *metrics.Metrics
	Gatherer         prometheus.Gatherer
	RemoteUserHeader string
	AllowOrigins     []string
	// RateLimit disables per-IP limiting when zero.
	RateLimit rate.Limit
	Burst     int
	// GlobalLimit caps all clients together when non-zero.
	GlobalLimit rate.Limit

	Auth       middleware.Authenticator
	Projects   ProjectViewer
	CaseReview CaseReviewer
	Variants   VariantLister
	LocusLists LocusListViewer
	Genes      GeneViewer
	Health     *HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics(cfg.Metrics))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.GlobalLimit > 0 {
		r.Use(middleware.RateLimitMiddleware(rate.NewLimiter(cfg.GlobalLimit, cfg.Burst), cfg.Log))
	}
	if cfg.RateLimit > 0 {
		r.Use(middleware.IPRateLimitMiddleware(middleware.NewIPRateLimiter(cfg.RateLimit, cfg.Burst), cfg.Log))
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")
	api.GET("/health", cfg.Health.Health)

	api.Use(middleware.RemoteUser(cfg.RemoteUserHeader, cfg.Auth, cfg.Log))
	api.Use(middleware.RequestLogger(cfg.Log))

	projects := NewProjectHandler(cfg.Projects)
	caseReview := NewCaseReviewHandler(cfg.CaseReview)
	variants := NewVariantHandler(cfg.Variants)
	locusLists := NewLocusListHandler(cfg.LocusLists)
	genes := NewGeneHandler(cfg.Genes)

	api.GET("/user/current", middleware.RequireUser(), GetCurrentUser)

	api.GET("/projects", projects.ListProjects)
	api.GET("/project/:projectGuid", projects.GetProjectPage)
	api.GET("/project/:projectGuid/case_review/export", caseReview.ExportCaseReview)
	api.GET("/family/:familyGuid", projects.GetFamily)
	api.GET("/family/:familyGuid/saved_variants", variants.GetSavedVariants)
	api.GET("/individual/:individualGuid", projects.GetIndividual)
	api.POST("/individual/:individualGuid/case_review", caseReview.UpdateCaseReview)

	api.GET("/locus_lists", locusLists.ListLocusLists)
	api.GET("/locus_list/:locusListGuid", locusLists.GetLocusList)
	api.GET("/gene/:geneId", genes.GetGene)

	return r
}
