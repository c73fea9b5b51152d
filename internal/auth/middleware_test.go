package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(t *testing.T, manager *JWTManager) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.GET("/private", Middleware(manager), func(c *gin.Context) {
		id, ok := CallerID(c)
		if !ok {
			t.Error("caller id missing after middleware")
		}
		c.JSON(http.StatusOK, gin.H{"caller": id.Hex()})
	})
	router.GET("/admin", Middleware(manager), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestMiddlewareRejectsMissingBearer(t *testing.T) {
	manager, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	router := protectedRouter(t, manager)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(recorder, req)
			if recorder.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", recorder.Code)
			}
		})
	}
}

func TestMiddlewarePassesValidToken(t *testing.T) {
	manager, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	router := protectedRouter(t, manager)

	token, err := manager.CreateToken(primitive.NewObjectID(), false)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
}

func TestAdminOnly(t *testing.T) {
	manager, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	router := protectedRouter(t, manager)

	memberToken, err := manager.CreateToken(primitive.NewObjectID(), false)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	adminToken, err := manager.CreateToken(primitive.NewObjectID(), true)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusForbidden {
		t.Errorf("member: status = %d, want 403", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", recorder.Code)
	}
}
