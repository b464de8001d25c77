package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
)

func run(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, ErrorEnvelope, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return rec, env, c
}

func TestRespondAPIError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", apierr.NotFound("member_not_found"), http.StatusNotFound, "member_not_found", "not found"},
		{"wrapped bad request", fmt.Errorf("record: %w", apierr.BadRequest("unknown_member", "bad ids")), http.StatusBadRequest, "unknown_member", "bad ids"},
		{"plain error hides detail", errors.New("pq: connection refused"), http.StatusInternalServerError, "list_failed", "internal server error"},
		{"bad gateway keeps message", &apierr.Error{Status: http.StatusBadGateway, Code: "generation_failed", Message: "Generation Failed", Err: errors.New("429")}, http.StatusBadGateway, "generation_failed", "Generation Failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env, c := run(t, func(c *gin.Context) { RespondAPIError(c, tc.err, "list_failed") })
			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got %d want %d", rec.Code, tc.wantStatus)
			}
			if env.Error.Code != tc.wantCode || env.Error.Message != tc.wantMsg {
				t.Fatalf("body: got %+v", env.Error)
			}
			if tc.wantStatus >= 500 && len(c.Errors) != 1 {
				t.Fatalf("expected server error to be attached to context, got %d", len(c.Errors))
			}
		})
	}
}
