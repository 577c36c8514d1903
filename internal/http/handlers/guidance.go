package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gloryco/thewell/internal/guidance/service"
	"github.com/gloryco/thewell/internal/http/response"
	"github.com/gloryco/thewell/internal/platform/apierr"
	"github.com/gloryco/thewell/internal/platform/ctxutil"
	"github.com/gloryco/thewell/internal/platform/logger"
)

const DefaultMaxBodyBytes = 1 << 20

type GuidanceHandler struct {
	log          *logger.Logger
	svc          service.Guider
	maxBodyBytes int64
}

func NewGuidanceHandler(log *logger.Logger, svc service.Guider, maxBodyBytes int64) *GuidanceHandler {
	if log == nil {
		log = logger.NewNop()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &GuidanceHandler{
		log:          log.With("handler", "GuidanceHandler"),
		svc:          svc,
		maxBodyBytes: maxBodyBytes,
	}
}

// Handle serves every method on the guidance route: OPTIONS gets an empty
// 204, POST is answered and anything else is a 405.
func (h *GuidanceHandler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.AbortWithStatus(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		response.RespondError(c, apierr.MethodNotAllowed())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Warn("request body too large", "request_id", ctxutil.RequestID(c.Request.Context()), "limit", tooLarge.Limit)
		}
		response.RespondError(c, apierr.Validation(apierr.CodeInvalidJSON, err))
		return
	}

	req, err := service.DecodeRequest(body)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	req.RequestID = ctxutil.RequestID(c.Request.Context())

	payload, err := h.svc.Guide(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, payload)
}
