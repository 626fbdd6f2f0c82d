package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/omiete01/eCommerce-microservice/internal/service"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func setupAuthRouter(tokens TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/users/:id", RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetInt64("user_id"),
			"user_name": c.GetString("user_name"),
		})
	})
	return router
}

func performAuthRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/users/1", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, 2*time.Hour)
	router := setupAuthRouter(jwtService)

	token, err := jwtService.GenerateToken(1, "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	w := performAuthRequest(router, "Bearer "+token)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRequireAuth_MissingOrMalformedHeader(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, 2*time.Hour)
	router := setupAuthRouter(jwtService)

	token, err := jwtService.GenerateToken(1, "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name          string
		authorization string
	}{
		{"no header", ""},
		{"no scheme", token},
		{"wrong scheme", "Basic " + token},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performAuthRequest(router, tt.authorization)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	router := setupAuthRouter(service.NewJWTService(testSecret, 2*time.Hour))

	other := service.NewJWTService("a-completely-different-signing-key!!", 2*time.Hour)
	token, err := other.GenerateToken(1, "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	w := performAuthRequest(router, "Bearer "+token)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, 1*time.Second)
	router := setupAuthRouter(jwtService)

	token, err := jwtService.GenerateToken(1, "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Wait for expiry
	time.Sleep(1100 * time.Millisecond)

	w := performAuthRequest(router, "Bearer "+token)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_ExposesClaims(t *testing.T) {
	jwtService := service.NewJWTService(testSecret, 2*time.Hour)
	router := setupAuthRouter(jwtService)

	token, err := jwtService.GenerateToken(7, "bob")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	w := performAuthRequest(router, "Bearer "+token)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"user_id":7`) || !strings.Contains(body, `"user_name":"bob"`) {
		t.Errorf("body = %s, want the verified identity on the context", body)
	}
}
