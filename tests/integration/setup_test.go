package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"investrack/internal/handlers"
	"investrack/internal/logger"
	"investrack/internal/middleware"
	"investrack/internal/models"
	"investrack/internal/services"
	"investrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Investment{},
		&models.TrackingFilter{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	investmentService := services.NewInvestmentService(db)
	trackingService := services.NewTrackingService(db)
	adminService := services.NewAdminService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	subscriberHandler := handlers.NewSubscriberHandler(trackingService, auditService)
	adminHandler := handlers.NewAdminHandler(adminService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	subscriber := protected.Group("/subscriber")
	subscriber.Use(middleware.RequireRoles(models.RoleSubscriber, models.RoleAdmin))
	subscriber.POST("/tracking", subscriberHandler.SetupTracking)
	subscriber.GET("/tracking", subscriberHandler.GetAggregatedData)
	subscriber.GET("/tracking/:id/insights", subscriberHandler.GetInsights)

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/users", adminHandler.GetUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.GET("/audit-logs", adminHandler.GetAuditLogs)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// data extracts the data object from the standard success envelope.
func data(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	result := parseJSON(t, rec)
	obj, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got: %s", rec.Body.String())
	}
	return obj
}

// registerUser registers a new user with the given role and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, role string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Test User","email":%q,"password":"password123"`, email)
	if role != "" {
		body += fmt.Sprintf(`,"role":%q`, role)
	}
	body += "}"
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	d := data(t, rec)
	user := d["user"].(map[string]interface{})
	return d["token"].(string), user["id"].(string)
}

// createInvestment records an investment for the token's user and returns its ID.
func (app *testApp) createInvestment(t *testing.T, token, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/investments", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create investment failed: %d %s", rec.Code, rec.Body.String())
	}
	return data(t, rec)["id"].(string)
}
