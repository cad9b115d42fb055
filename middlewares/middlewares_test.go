package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kariqs/amexan-store/initializers"
	"github.com/Kariqs/amexan-store/models"
)

func setupAuthTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := initializers.OpenDatabase("sqlite", t.TempDir()+"/auth.db", false)
	require.NoError(t, err)
	require.NoError(t, initializers.Migrate(db))
	initializers.DB = db
	initializers.Config.JWTSecret = "test-secret"
}

func signToken(t *testing.T, secret string, customerID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"customer_id": customerID,
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter() *gin.Engine {
	router := gin.New()
	router.GET("/me", RequireAuth, func(ctx *gin.Context) {
		customer, _ := CurrentCustomer(ctx)
		ctx.JSON(http.StatusOK, gin.H{"email": customer.Email})
	})
	router.GET("/admin", RequireAuth, RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return router
}

func doRequest(router http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	setupAuthTest(t)
	customer := models.Customer{Email: "jane@example.com", Phone: "05551234567", PasswordHash: "x"}
	require.NoError(t, initializers.DB.Create(&customer).Error)
	banned := models.Customer{Email: "ban@example.com", Phone: "05551234568", PasswordHash: "x", IsBanned: true}
	require.NoError(t, initializers.DB.Create(&banned).Error)
	router := newAuthRouter()

	w := doRequest(router, "/me", signToken(t, "test-secret", customer.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.com")

	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "/me", signToken(t, "other-secret", customer.ID)).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "/me", signToken(t, "test-secret", 999)).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(router, "/me", signToken(t, "test-secret", banned.ID)).Code)
}

func TestRequireAdmin(t *testing.T) {
	setupAuthTest(t)
	customer := models.Customer{Email: "jane@example.com", Phone: "05551234567", PasswordHash: "x"}
	admin := models.Customer{Email: "admin@example.com", Phone: "05000000000", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, initializers.DB.Create(&customer).Error)
	require.NoError(t, initializers.DB.Create(&admin).Error)
	router := newAuthRouter()

	assert.Equal(t, http.StatusForbidden, doRequest(router, "/admin", signToken(t, "test-secret", customer.ID)).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(router, "/admin", signToken(t, "test-secret", admin.ID)).Code)
}

func TestRedisRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	router := gin.New()
	router.Use(RedisRateLimit(rdb, "test", 2, time.Minute))
	router.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, doRequest(router, "/", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "/", "").Code)
}

func TestRedisRateLimitSlidingWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rateLimitClock = func() time.Time { return now }
	t.Cleanup(func() { rateLimitClock = time.Now })

	router := gin.New()
	router.Use(RedisRateLimit(rdb, "test", 2, time.Second))
	router.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	first := doRequest(router, "/", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	// Both requests land in the same millisecond and must count separately.
	assert.Equal(t, http.StatusOK, doRequest(router, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "/", "").Code)

	now = now.Add(999 * time.Millisecond)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "/", "").Code)

	now = now.Add(2 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doRequest(router, "/", "").Code, "sub-second windows slide by milliseconds")
}

func TestRedisRateLimitWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RedisRateLimit(nil, "test", 1, time.Minute))
	router.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router, "/", "").Code)
	}
}
