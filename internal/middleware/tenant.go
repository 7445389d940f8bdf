package middleware

import (
	"net/http"

	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CompanyIDHeader = "X-Company-ID"

// TenantContext resolves the acting company from the X-Company-ID header and
// stores it under "company_id". Every route behind it is tenant scoped.
func TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader(CompanyIDHeader)
		if companyID == "" {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "missing X-Company-ID header", nil)
			c.Abort()
			return
		}
		if _, err := uuid.Parse(companyID); err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid X-Company-ID header", nil)
			c.Abort()
			return
		}

		c.Set("company_id", companyID)
		c.Next()
	}
}
