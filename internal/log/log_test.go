package log

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl.Level())

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl.Level())

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestLoggerLevelsByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mw := Logger(zap.New(core), "http")

	handler := func(status int) http.Handler {
		return mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
	}

	cases := []struct {
		path   string
		status int
		level  zapcore.Level
	}{
		{"/healthz", http.StatusOK, zapcore.DebugLevel},
		{"/api/v1/estimate", http.StatusOK, zapcore.InfoLevel},
		{"/api/v1/estimate", http.StatusUnprocessableEntity, zapcore.WarnLevel},
		{"/api/v1/quotes/pdf", http.StatusInternalServerError, zapcore.ErrorLevel},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.path, nil)
		handler(c.status).ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.AllUntimed()
	require.Len(t, entries, len(cases))
	for i, c := range cases {
		assert.Equal(t, c.level, entries[i].Level, c.path)
		assert.Equal(t, "http", entries[i].LoggerName)
	}
}

func TestLoggerNilPanics(t *testing.T) {
	assert.Panics(t, func() { Logger(nil, "x") })
}

func TestLoggerRecordsRouteAndQuoteID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := chi.NewRouter()
	r.Use(Logger(zap.New(core), "http"))
	r.Post("/api/v1/quotes/{format}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(QuoteIDHeader, "ab12cd34")
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/v1/materials", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/quotes/pdf", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/materials", nil))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	quote := entries[0].ContextMap()
	assert.Equal(t, "POST /api/v1/quotes/{format}", entries[0].Message)
	assert.Equal(t, "/api/v1/quotes/{format}", quote["route"])
	assert.Equal(t, "ab12cd34", quote["quote_id"])

	list := entries[1].ContextMap()
	assert.Equal(t, "/api/v1/materials", list["route"])
	assert.Equal(t, int64(2), list["bytes"])
	assert.NotContains(t, list, "quote_id")
}
