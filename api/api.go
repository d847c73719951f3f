package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/semanticallynull/smartbike-backend/internal/middleware"
	"github.com/semanticallynull/smartbike-backend/internal/o11y"
	"github.com/semanticallynull/smartbike-backend/rental"
)

// RecentActivityLimit is how many rides the activity feed shows.
const RecentActivityLimit = 5

type API struct {
	r       *gin.Engine
	rentals *rental.Manager
	store   rental.Store
}

func New(rentals *rental.Manager, store rental.Store, obs *o11y.Observability, metricsUsername, metricsPassword string) *API {
	a := &API{
		r:       gin.New(),
		rentals: rentals,
		store:   store,
	}

	a.r.Use(
		gin.Recovery(),
		middleware.Tracing(),
		middleware.Logging(obs.Logger),
		middleware.Metrics(obs.Registry),
	)

	a.r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	metrics := gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	if metricsUsername != "" {
		a.r.GET("/metrics", gin.BasicAuth(gin.Accounts{metricsUsername: metricsPassword}), metrics)
	} else {
		a.r.GET("/metrics", metrics)
	}

	a.r.POST("/register", a.registerHandler)
	a.r.POST("/login", a.loginHandler)

	g := a.r.Group("/api")
	g.GET("/bikes", a.bikesHandler)
	g.GET("/stations", a.stationsHandler)
	g.GET("/rides/:userId", a.ridesHandler)
	g.GET("/payments/:userId", a.paymentsHandler)
	g.POST("/rent-bike", a.rentBikeHandler)
	g.POST("/end-ride", a.endRideHandler)
	g.GET("/user-stats/:userId", a.userStatsHandler)
	g.GET("/recent-activity/:userId", a.recentActivityHandler)

	return a
}

func (a *API) Router() *gin.Engine {
	return a.r
}
