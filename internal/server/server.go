package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"appsuite-be/internal/config"
	"appsuite-be/internal/controllers"
	"appsuite-be/internal/middleware"
	"appsuite-be/internal/service"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Config       *config.Config
	Logger       *zap.Logger
	URLService   service.URLService
	AuthService  service.AuthService
	Notes        *service.NoteStore
	RegexService service.RegexService
	NameService  service.NameService
}

type Server struct {
	Router   *gin.Engine
	limiters []*middleware.RateLimiter
}

// New wires every application onto one gin engine.
func New(deps Deps) *Server {
	cfg := deps.Config
	s := &Server{}

	limiter := func(name string, rps float64, burst int) gin.HandlerFunc {
		rl := middleware.NewRateLimiter(name, rate.Limit(rps), burst)
		s.limiters = append(s.limiters, rl)
		return rl.LimitMiddleware()
	}
	generalLimit := limiter("general", cfg.RateLimitRPS, cfg.RateLimitBurst)
	authLimit := limiter("auth", cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst)
	shortenLimit := limiter("shorten", cfg.RateLimitShortenRPS, cfg.RateLimitShortenBurst)
	redirectLimit := limiter("redirect", cfg.RateLimitRedirectRPS, cfg.RateLimitRedirectBurst)

	shortener := controllers.NewShortenerController(deps.URLService, cfg.BaseURL)
	auth := controllers.NewAuthController(deps.AuthService, cfg.CookieSecure)
	qrcode := controllers.NewQRCodeController(deps.URLService, cfg.BaseURL)
	notes := controllers.NewNoteController(deps.Notes)
	regex := controllers.NewRegexController(deps.RegexService)
	names := controllers.NewNameController(deps.NameService)

	requireAuth := middleware.AuthMiddleware(deps.AuthService)
	optionalAuth := middleware.OptionalAuth(deps.AuthService)

	router := gin.New()
	router.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Metrics(),
	)

	// Health check and metrics (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/s/:shortCode", redirectLimit, shortener.Redirect)

	// Anonymous shortener, notes, regex tester, names
	api := router.Group("/api")
	api.Use(generalLimit)
	{
		api.POST("/shorten", shortenLimit, shortener.Shorten)
		api.GET("/history", shortener.History)
		api.DELETE("/delete/:id", shortener.Delete)
		api.DELETE("/clear-history", shortener.ClearHistory)

		api.GET("/notes", notes.List)
		api.POST("/notes", notes.Add)
		api.DELETE("/notes", notes.Clear)
		api.DELETE("/notes/:index", notes.Delete)

		api.POST("/regex/test", regex.Test)
		api.GET("/names", names.Analyze)
	}

	// Accounts shortener
	v1 := router.Group("/api/v1")
	v1.Use(generalLimit)
	{
		authGroup := v1.Group("/auth")
		authGroup.Use(authLimit)
		{
			authGroup.POST("/signup", auth.Signup)
			authGroup.POST("/login", auth.Login)
			authGroup.POST("/logout", optionalAuth, auth.Logout)
			authGroup.GET("/check-auth", optionalAuth, auth.CheckAuth)
			authGroup.DELETE("/account", requireAuth, auth.DeleteAccount)
		}

		protected := v1.Group("")
		protected.Use(requireAuth)
		{
			protected.POST("/shorten", shortenLimit, shortener.Shorten)
			protected.GET("/history", shortener.History)
			protected.DELETE("/delete/:id", shortener.Delete)
			protected.DELETE("/clear-history", shortener.ClearHistory)
			protected.GET("/url/:shortCode", shortener.Stats)
			protected.GET("/url/:shortCode/analytics", shortener.Analytics)
		}

		v1.GET("/redirect/:shortCode", redirectLimit, shortener.Preview)
		v1.GET("/qrcode/:shortCode", qrcode.GenerateQRCode)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
	})

	s.Router = router
	return s
}

// Close stops the rate limiters' background sweepers.
func (s *Server) Close() {
	for _, rl := range s.limiters {
		rl.Stop()
	}
}
