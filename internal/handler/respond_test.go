package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devimrittika/Green-Planet/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	recorder := httptest.NewRecorder()
	router := gin.New()
	router.Use(TraceIDMiddleware())
	router.GET("/boom", func(c *gin.Context) {
		HandleServiceError(c, zap.NewNop(), err)
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(recorder, req)

	var body APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return recorder, body
}

func TestHandleServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &service.ValidationError{Fields: []string{"title"}}, http.StatusBadRequest},
		{"not found", service.ErrBlogNotFound, http.StatusNotFound},
		{"not owner", service.ErrNotOwner, http.StatusForbidden},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad status", service.ErrInvalidStatus, http.StatusBadRequest},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder, body := serveError(t, tc.err)
			if recorder.Code != tc.code {
				t.Errorf("status = %d, want %d", recorder.Code, tc.code)
			}
			if body.Status != "error" || body.Code != tc.code {
				t.Errorf("envelope = %+v", body)
			}
			if body.TraceID == "" {
				t.Error("trace id missing from envelope")
			}
		})
	}
}

func TestUnknownErrorHidesDetails(t *testing.T) {
	_, body := serveError(t, errors.New("mongo: connection refused"))
	if body.Message != "internal server error" {
		t.Errorf("message = %q, internal detail leaked", body.Message)
	}
}

func TestRespondSuccessEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	router := gin.New()
	router.Use(TraceIDMiddleware())
	router.GET("/ok", func(c *gin.Context) {
		RespondSuccess(c, gin.H{"answer": 42}, "fetched")
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if got := recorder.Header().Get("X-Trace-ID"); got == "" {
		t.Error("X-Trace-ID header missing")
	}

	var body APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Status != "success" || body.Message != "fetched" {
		t.Errorf("envelope = %+v", body)
	}
}
