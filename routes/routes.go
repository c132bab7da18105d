package routes

import (
	"net/http"
	"time"

	"preen/handlers"
	"preen/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the slot query endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/availability", hb.Availability.GetAvailability)
	}
}

// RegisterBookingRoutes sets up the booking mutation endpoints. All of them
// require an authenticated actor.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.JWTAuthMiddleware())
		bookings.PATCH("/:id/schedule", hb.Schedule.Reschedule)
		bookings.POST("/:id/rebook", hb.Schedule.Rebook)
		bookings.POST("/:id/aftercare", hb.Schedule.SubmitAftercare)
	}
}

// RegisterHoldRoutes sets up slot reservation endpoints.
func RegisterHoldRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	holds := r.Group("/api/holds")
	{
		holds.Use(middleware.JWTAuthMiddleware())
		holds.POST("", hb.Holds.CreateHold)
		holds.DELETE("/:id", hb.Holds.ReleaseHold)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm preen"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHoldRoutes(r, hb)
}
