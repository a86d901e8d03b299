package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goran-ethernal/CoinFeed/internal/logger"
	"github.com/stretchr/testify/require"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		allowedOrigins []string
		origin         string
		method         string
		expectedOrigin string
		expectVary     bool
		expectCalled   bool
	}{
		{
			name:           "wildcard echoes request origin",
			allowedOrigins: []string{"*"},
			origin:         "https://app.example.com",
			method:         http.MethodGet,
			expectedOrigin: "https://app.example.com",
			expectVary:     true,
			expectCalled:   true,
		},
		{
			name:           "wildcard without origin header",
			allowedOrigins: []string{"*"},
			method:         http.MethodGet,
			expectedOrigin: "*",
			expectCalled:   true,
		},
		{
			name:           "listed origin",
			allowedOrigins: []string{"https://a.example.com", "https://b.example.com"},
			origin:         "https://b.example.com",
			method:         http.MethodPost,
			expectedOrigin: "https://b.example.com",
			expectVary:     true,
			expectCalled:   true,
		},
		{
			name:           "unlisted origin",
			allowedOrigins: []string{"https://a.example.com"},
			origin:         "https://evil.example.com",
			method:         http.MethodGet,
			expectCalled:   true,
		},
		{
			name:           "no allowed origins",
			allowedOrigins: nil,
			origin:         "https://a.example.com",
			method:         http.MethodDelete,
			expectCalled:   true,
		},
		{
			name:           "preflight is answered without the handler",
			allowedOrigins: []string{"https://a.example.com"},
			origin:         "https://a.example.com",
			method:         http.MethodOptions,
			expectedOrigin: "https://a.example.com",
			expectVary:     true,
			expectCalled:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			h := CORSMiddleware(tt.allowedOrigins)(okHandler(&called))

			req := httptest.NewRequest(tt.method, "/api/v1/coins", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.expectCalled, called)
			require.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))

			if tt.expectedOrigin != "" {
				require.Equal(t, corsAllowedMethods, w.Header().Get("Access-Control-Allow-Methods"))
				require.Equal(t, corsAllowedHeaders, w.Header().Get("Access-Control-Allow-Headers"))
				require.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
			} else {
				require.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
			}

			if tt.expectVary {
				require.Equal(t, "Origin", w.Header().Get("Vary"))
			} else {
				require.Empty(t, w.Header().Get("Vary"))
			}
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		write    bool
		expected int
	}{
		{name: "explicit status", status: http.StatusServiceUnavailable, expected: http.StatusServiceUnavailable},
		{name: "no content", status: http.StatusNoContent, expected: http.StatusNoContent},
		{name: "implicit 200 on write", write: true, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := LoggingMiddleware(logger.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.write {
					_, _ = w.Write([]byte(`{"coins":[]}`))
					return
				}
				w.WriteHeader(tt.status)
			}))

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/coins", nil))
			require.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusInternalServerError)

	require.Equal(t, http.StatusNotFound, rw.statusCode)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_WriteMarksWritten(t *testing.T) {
	t.Parallel()

	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	_, err := rw.Write([]byte("x"))
	require.NoError(t, err)

	rw.WriteHeader(http.StatusTeapot)
	require.Equal(t, http.StatusOK, rw.statusCode)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{
			name:    "no panic",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) },
			status:  http.StatusNoContent,
		},
		{
			name:    "string panic",
			handler: func(w http.ResponseWriter, r *http.Request) { panic("boom") },
			status:  http.StatusInternalServerError,
		},
		{
			name:    "error panic",
			handler: func(w http.ResponseWriter, r *http.Request) { panic(errors.New("boom")) },
			status:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := RecoveryMiddleware(logger.NewNopLogger())(tt.handler)
			w := httptest.NewRecorder()

			require.NotPanics(t, func() {
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/coins", nil))
			})
			require.Equal(t, tt.status, w.Code)
		})
	}
}

func TestMiddlewareChain_PanicWithCORS(t *testing.T) {
	t.Parallel()

	log := logger.NewNopLogger()
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler failure")
	})
	h = RecoveryMiddleware(log)(h)
	h = LoggingMiddleware(log)(h)
	h = CORSMiddleware([]string{"*"})(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/coins", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
