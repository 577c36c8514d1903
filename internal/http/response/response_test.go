package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gloryco/thewell/internal/platform/apierr"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	RespondError(c, err)
	return rec
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", apierr.Validation(apierr.CodeQueryRequired, nil), 400, `{"error":"query required"}`},
		{"method", apierr.MethodNotAllowed(), 405, `{"error":"method not allowed"}`},
		{"upstream", apierr.Upstream(apierr.CodeUpstream, "rate limited", errors.New("x")), 502, `{"error":"upstream","detail":"rate limited"}`},
		{"upstream empty detail", apierr.Upstream(apierr.CodeUpstream, "", nil), 502, `{"error":"upstream","detail":""}`},
		{"plain error", errors.New("boom"), 500, `{"error":"internal server error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := respond(tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		})
	}
}
