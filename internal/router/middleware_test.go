package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fuelflow/internal/authz"
	"github.com/fuelflow/internal/config"
	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func setupAuthMiddlewareTest(t *testing.T) (*service.AuthService, repository.UserRepository, *models.User) {
	t.Helper()

	dsn := fmt.Sprintf("file:router_auth_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 1

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(cfg, userRepo)

	hash, err := authService.HashPassword("password1")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Username:     "maria",
		PasswordHash: hash,
		FullName:     "Maria K",
		Department:   constants.DepartmentSales,
		Status:       constants.UserStatusActive,
	}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return authService, userRepo, user
}

func decodeEnvelopeCode(t *testing.T, body []byte) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestJWTAuthMiddlewareRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService, userRepo, _ := setupAuthMiddlewareTest(t)

	r := gin.New()
	r.Use(JWTAuthMiddleware(authService, userRepo))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if code := decodeEnvelopeCode(t, w.Body.Bytes()); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestJWTAuthMiddlewarePopulatesContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService, userRepo, user := setupAuthMiddlewareTest(t)

	token, _, err := authService.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	r := gin.New()
	r.Use(JWTAuthMiddleware(authService, userRepo))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username":   c.GetString(shared.ContextUsername),
			"department": c.GetString(shared.ContextDepartment),
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["username"] != "maria" {
		t.Fatalf("username want maria got %s", resp["username"])
	}
	if resp["department"] != constants.DepartmentSales {
		t.Fatalf("department want %s got %s", constants.DepartmentSales, resp["department"])
	}
}

func TestJWTAuthMiddlewareRejectsStaleTokenVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService, userRepo, user := setupAuthMiddlewareTest(t)

	token, _, err := authService.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	user.TokenVersion++
	if err := userRepo.Update(user); err != nil {
		t.Fatalf("bump token version failed: %v", err)
	}

	r := gin.New()
	r.Use(JWTAuthMiddleware(authService, userRepo))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if code := decodeEnvelopeCode(t, w.Body.Bytes()); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestDepartmentRBACMiddlewareDeniesOutsidePolicy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_rbac_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("init authz failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(shared.ContextUserID, uint(7))
		c.Set(shared.ContextDepartment, constants.DepartmentWarehouse)
	})
	r.Use(DepartmentRBACMiddleware(authzService))
	r.GET("/api/v1/analytics/report", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/v1/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/report", nil)
	r.ServeHTTP(w, req)
	if code := decodeEnvelopeCode(t, w.Body.Bytes()); code != 403 {
		t.Fatalf("analytics for warehouse want 403 got %d", code)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("orders for warehouse want 200 got %d", w2.Code)
	}
	if !strings.Contains(w2.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w2.Body.String())
	}
}
