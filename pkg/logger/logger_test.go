package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func decodeLastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestInitWithWriter_AddsServiceField(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("shop-service", "debug", &buf)

	Info().Str("key", "value").Msg("hello")

	entry := decodeLastLine(t, &buf)
	assert.Equal(t, "shop-service", entry["service"])
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "value", entry["key"])
}

func TestInitWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("shop-service", "not-a-level", &buf)

	Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestGinLoggerMiddleware_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	InitWithWriter("shop-service", "info", &buf)

	router := gin.New()
	router.Use(GinLoggerMiddleware())
	router.GET("/products/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/products/42", nil)
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	entry := decodeLastLine(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "/products/:id", entry["route"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), entry["request_id"])
}

func TestGinLoggerMiddleware_KeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	InitWithWriter("shop-service", "info", &buf)

	router := gin.New()
	router.Use(GinLoggerMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "info", decodeLastLine(t, &buf)["level"])
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, ParseGormLevel("silent"))
	assert.Equal(t, gormlogger.Error, ParseGormLevel("ERROR"))
	assert.Equal(t, gormlogger.Info, ParseGormLevel("info"))
	assert.Equal(t, gormlogger.Warn, ParseGormLevel(""))
}

func TestGormLogger_TraceSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("shop-service", "debug", &buf)

	l := NewGormLogger("error")
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gormlogger.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	entry := decodeLastLine(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "SELECT 1", entry["sql"])
}

func TestGormLogger_LogModeReturnsCopy(t *testing.T) {
	l := NewGormLogger("warn")
	silent := l.LogMode(gormlogger.Silent)

	assert.Equal(t, gormlogger.Warn, l.level)
	assert.Equal(t, gormlogger.Silent, silent.(*GormLogger).level)
}
