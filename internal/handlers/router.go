package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itimpact/spendx/internal/middleware"
)

// RouterOptions carries everything the router mounts.
type RouterOptions struct {
	Summaries   *SummaryHandler
	Users       *UserHandler
	Investments *InvestmentHandler
	Feed        *SummaryFeed

	// Registry backs /metrics. Nil disables metrics.
	Registry *prometheus.Registry

	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	if opts.Registry != nil {
		router.Use(middleware.NewMetrics(opts.Registry).Handler())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("")
	api.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	{
		api.GET("/summary", opts.Summaries.GetUserSummary)
		api.GET("/investment", opts.Summaries.GetInvestmentSummary)
		api.POST("/investment", opts.Investments.CreateInvestment)

		users := api.Group("/users")
		users.GET("", opts.Users.ListUsers)
		users.POST("", opts.Users.CreateUser)
		users.GET("/:id", opts.Users.GetUser)
		users.PUT("/:id", opts.Users.UpdateUser)
		users.DELETE("/:id", opts.Users.DeleteUser)
	}

	router.GET("/ws/investment", opts.Feed.Handle)

	return router
}
