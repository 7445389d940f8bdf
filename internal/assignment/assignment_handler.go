package assignment

import (
	"net/http"

	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Complete(c *gin.Context) {
	companyID := c.GetString("company_id")
	entityType := c.Query("entity_type")
	assignmentID := c.Param("id")

	var req CompleteAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	if err := h.service.Complete(c.Request.Context(), companyID, entityType, assignmentID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": assignmentID, "status": StatusCompleted}, nil)
}

func (h *Handler) CompleteForVacation(c *gin.Context) {
	h.bulkEmployeeAction(c, func(companyID string, req VacationRequest) error {
		return h.service.CompleteForVacation(c.Request.Context(), companyID, req)
	})
}

func (h *Handler) RestoreAfterVacationDeletion(c *gin.Context) {
	h.bulkEmployeeAction(c, func(companyID string, req VacationRequest) error {
		return h.service.RestoreAfterVacationDeletion(c.Request.Context(), companyID, req)
	})
}

func (h *Handler) bulkEmployeeAction(c *gin.Context, action func(companyID string, req VacationRequest) error) {
	companyID := c.GetString("company_id")

	var req VacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	if err := action(companyID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"employee_id": req.EmployeeID}, nil)
}

func (h *Handler) CompleteForExit(c *gin.Context) {
	h.exitAction(c, func(companyID string, req ExitRequest) error {
		return h.service.CompleteForExit(c.Request.Context(), companyID, req)
	})
}

func (h *Handler) RestoreAfterExitDeletion(c *gin.Context) {
	h.exitAction(c, func(companyID string, req ExitRequest) error {
		return h.service.RestoreAfterExitDeletion(c.Request.Context(), companyID, req)
	})
}

func (h *Handler) exitAction(c *gin.Context, action func(companyID string, req ExitRequest) error) {
	companyID := c.GetString("company_id")

	var req ExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	if err := action(companyID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"employee_id": req.EmployeeID}, nil)
}

func (h *Handler) GetEntityAssignments(c *gin.Context) {
	companyID := c.GetString("company_id")
	entityType := c.Param("entityType")
	entityID := c.Param("entityId")

	resp, err := h.service.GetEntityAssignments(c.Request.Context(), companyID, entityType, entityID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
