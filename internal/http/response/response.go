package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmelchor/symreg-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondAPIError(c *gin.Context, err *apierr.Error) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	RespondError(c, status, err.Code, err.Err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
