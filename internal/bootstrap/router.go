package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/folio-works/portfolio-backend/internal/api/http"
	"github.com/folio-works/portfolio-backend/internal/api/http/middleware"
	"github.com/folio-works/portfolio-backend/internal/auth"
	authhttp "github.com/folio-works/portfolio-backend/internal/auth/http"
	authmw "github.com/folio-works/portfolio-backend/internal/auth/middleware"
	"github.com/folio-works/portfolio-backend/internal/chatbot"
	chathttp "github.com/folio-works/portfolio-backend/internal/chatbot/http"
	"github.com/folio-works/portfolio-backend/internal/contact"
	contacthttp "github.com/folio-works/portfolio-backend/internal/contact/http"
	"github.com/folio-works/portfolio-backend/internal/flows"
	flowshttp "github.com/folio-works/portfolio-backend/internal/flows/http"
	"github.com/folio-works/portfolio-backend/internal/metrics"
	"github.com/folio-works/portfolio-backend/internal/projects/repository"
	projecthttp "github.com/folio-works/portfolio-backend/internal/projects/http"
	"github.com/folio-works/portfolio-backend/internal/projects/service"
)

const loginPerMinute = 10

// PageCache serves and invalidates cached page responses.
type PageCache interface {
	service.Revalidator
	Middleware() gin.HandlerFunc
}

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	SecureCookies  bool
	RatePerMinute  int
	Log            *zap.Logger

	Store     repository.Store
	Cache     PageCache
	CachePing httpapi.Pinger // nil when caching is disabled

	Projects  *service.ProjectService
	Passwords *auth.PasswordChecker
	Tokens    *auth.TokenService
	Bot       *chatbot.Bot
	Contact   *contact.Service
	Flows     *flows.Service
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.CachePing)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	cache := dep.Cache
	requireAdmin := authmw.RequireAdmin(dep.Tokens)
	projectHandler := projecthttp.New(dep.Projects)

	pages := r.Group("")
	pages.Use(cache.Middleware())
	projectHandler.RegisterPublicPages(pages)

	// Auth runs before the cache so cached admin pages are never served anonymously.
	adminPages := r.Group("/admin")
	adminPages.Use(requireAdmin, cache.Middleware())
	projectHandler.RegisterAdminPages(adminPages)

	api := r.Group("/api")

	// Each public endpoint gets its own per-IP budget.
	chatLimiter := middleware.RateLimitByIP(middleware.NewRateLimiter(dep.RatePerMinute))
	contactLimiter := middleware.RateLimitByIP(middleware.NewRateLimiter(dep.RatePerMinute))
	chathttp.New(dep.Bot).Register(api, chatLimiter)
	contacthttp.New(dep.Contact).Register(api, contactLimiter)

	admin := api.Group("/admin")

	session := admin.Group("")
	session.Use(middleware.RateLimitByIP(middleware.NewRateLimiter(loginPerMinute)))
	authHandler := authhttp.New(dep.Passwords, dep.Tokens, dep.SecureCookies)
	authHandler.Register(session)

	adminSession := admin.Group("")
	adminSession.Use(requireAdmin)
	authHandler.RegisterSession(adminSession)

	adminProjects := admin.Group("/projects")
	adminProjects.Use(requireAdmin)
	projectHandler.RegisterAdminAPI(adminProjects)

	adminFlows := admin.Group("/flows")
	adminFlows.Use(requireAdmin)
	flowshttp.New(dep.Flows).Register(adminFlows)

	return r
}
