package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIdempotencyRouter(t *testing.T, status int, body gin.H) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	hits := 0

	router := gin.New()
	router.POST("/employees", Idempotency(rdb), func(c *gin.Context) {
		hits++
		c.JSON(status, body)
	})
	return router, mock, &hits
}

func postEmployees(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/employees", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	cacheKey := "idemp:/employees::req-1"
	lockKey := cacheKey + ":lock"

	t.Run("completed request is cached and the retry replayed", func(t *testing.T) {
		router, mock, hits := setupIdempotencyRouter(t, http.StatusCreated, gin.H{"ok": true})

		payload, err := json.Marshal(cachedResponse{
			Status: http.StatusCreated,
			Body:   json.RawMessage(`{"ok":true}`),
		})
		require.NoError(t, err)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		first := postEmployees(router, "req-1")
		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, 1, *hits)

		mock.ExpectGet(cacheKey).SetVal(string(payload))

		retry := postEmployees(router, "req-1")
		assert.Equal(t, http.StatusCreated, retry.Code)
		assert.JSONEq(t, `{"ok":true}`, retry.Body.String())
		assert.Equal(t, 1, *hits, "retry must not re-run the handler")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate is rejected", func(t *testing.T) {
		router, mock, hits := setupIdempotencyRouter(t, http.StatusCreated, gin.H{"ok": true})

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := postEmployees(router, "req-1")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "still being processed")
		assert.Equal(t, 0, *hits)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed request releases the lock without caching", func(t *testing.T) {
		router, mock, hits := setupIdempotencyRouter(t, http.StatusConflict, gin.H{"ok": false})

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectDel(lockKey).SetVal(1)

		w := postEmployees(router, "req-1")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 1, *hits)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key passes through", func(t *testing.T) {
		router, mock, hits := setupIdempotencyRouter(t, http.StatusCreated, gin.H{"ok": true})

		w := postEmployees(router, "")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *hits)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
