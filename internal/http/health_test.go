package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/bookclub/internal/database"
)

func setupHealthTest(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	db := &database.Database{DB: gormDB}

	controller := NewHealthController(db, "test")

	router := gin.New()
	router.GET("/health", controller.Status)

	return router, db
}

func TestHealthController_Status(t *testing.T) {
	t.Run("reachable database reports healthy", func(t *testing.T) {
		router, _ := setupHealthTest(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "test", response.Version)
		assert.NotEmpty(t, response.Time)
	})

	t.Run("closed database reports unhealthy", func(t *testing.T) {
		router, db := setupHealthTest(t)
		require.NoError(t, db.Close())

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})
}
