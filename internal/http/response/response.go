package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gloryco/thewell/internal/platform/apierr"
)

// ErrorBody is the public error shape: {"error": code} plus "detail" on
// upstream failures.
type ErrorBody struct {
	Error  string  `json:"error"`
	Detail *string `json:"detail,omitempty"`
}

// RespondError writes err as an ErrorBody. Errors that are not *apierr.Error
// become a 500 without detail. The error is attached to the gin context for
// the request log.
func RespondError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}

	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status == 0 {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Error: apierr.CodeInternal})
		return
	}

	body := ErrorBody{Error: ae.Code}
	if ae.Status == http.StatusBadGateway {
		detail := ae.Detail
		body.Detail = &detail
	}
	c.AbortWithStatusJSON(ae.Status, body)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
