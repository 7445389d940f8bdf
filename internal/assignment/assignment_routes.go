package assignment

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	assignments := r.Group("/assignments")
	{
		assignments.POST("", handler.Create)
		assignments.POST("/:id/complete", handler.Complete)
		assignments.POST("/vacation-complete", handler.CompleteForVacation)
		assignments.POST("/vacation-restore", handler.RestoreAfterVacationDeletion)
		assignments.POST("/exit-complete", handler.CompleteForExit)
		assignments.POST("/exit-restore", handler.RestoreAfterExitDeletion)
		assignments.GET("/:entityType/:entityId", handler.GetEntityAssignments)
	}
}
