package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes. Everything except the
// health check sits behind the auth middleware.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("")
	secured.Use(JWTAuthMiddleware(h.cfg, h.logger))

	requests := secured.Group("/help-requests")
	{
		requests.POST("", h.createHelpRequest)
		requests.GET("", h.listHelpRequests)
		requests.GET("/nearby", h.nearbyHelpRequests)
		requests.GET("/:id", h.getHelpRequest)
		requests.PUT("/:id", h.updateHelpRequest)
		requests.DELETE("/:id", h.deleteHelpRequest)
		requests.PUT("/:id/accept", h.acceptHelpRequest)
		requests.PUT("/:id/start", h.startHelpRequest)
		requests.PUT("/:id/complete", h.completeHelpRequest)
		requests.PUT("/:id/rate", h.rateHelpRequest)
		requests.PUT("/:id/cancel", h.cancelHelpRequest)
	}

	users := secured.Group("/users")
	{
		users.GET("/nearby-helpers", h.nearbyHelpers)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}

	notifications := secured.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.PUT("/:id/read", h.markNotificationRead)
		notifications.PUT("/read-all", h.markAllNotificationsRead)
	}
}
