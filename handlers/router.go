package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router groups the handlers served by the API
type Router struct {
	Query    *QueryHandler
	Provider *ProviderHandler
	Search   *SearchHandler
	Booking  *BookingHandler // optional, nil when no database is configured
}

// NewEngine builds the gin engine with middleware and all routes
func (rt Router) NewEngine(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), Metrics())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Free-text queries
		api.POST("/query", rt.Query.Query)

		// Provider endpoints
		api.GET("/providers/:name", rt.Provider.GetProvider)

		// Search endpoints
		api.POST("/search", rt.Search.Search)
		api.GET("/search/districts", rt.Search.GetDistricts)
		api.GET("/search/providers", rt.Search.GetProviders)

		// Booking endpoints
		if rt.Booking != nil {
			api.POST("/bookings", rt.Booking.CreateBooking)
			api.GET("/bookings", rt.Booking.ListBookings)
			api.POST("/bookings/cancel", rt.Booking.CancelByDetails)
			api.GET("/bookings/:id", rt.Booking.GetBooking)
			api.DELETE("/bookings/:id", rt.Booking.CancelBooking)
		}
	}

	return r
}
