package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apimocks "github.com/goran-ethernal/CoinFeed/internal/api/mocks"
	"github.com/goran-ethernal/CoinFeed/internal/common"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
	"github.com/goran-ethernal/CoinFeed/pkg/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAPIConfig(cors config.CORSConfig) *config.APIConfig {
	return &config.APIConfig{
		Enabled:       true,
		ListenAddress: "localhost:0",
		ReadTimeout:   common.Duration{Duration: 5 * time.Second},
		WriteTimeout:  common.Duration{Duration: 10 * time.Second},
		IdleTimeout:   common.Duration{Duration: 60 * time.Second},
		CORS:          cors,
	}
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *config.APIConfig
		validate func(t *testing.T, server *Server)
	}{
		{
			name: "create server with basic config",
			config: &config.APIConfig{
				Enabled:       true,
				ListenAddress: "localhost:8080",
				ReadTimeout:   common.Duration{Duration: 5 * time.Second},
				WriteTimeout:  common.Duration{Duration: 10 * time.Second},
				IdleTimeout:   common.Duration{Duration: 60 * time.Second},
			},
			validate: func(t *testing.T, server *Server) {
				t.Helper()

				require.NotNil(t, server)
				require.NotNil(t, server.config)
				require.NotNil(t, server.handler)
				require.NotNil(t, server.server)
				require.NotNil(t, server.log)
				require.Equal(t, "localhost:8080", server.server.Addr)
				require.Equal(t, 5*time.Second, server.server.ReadTimeout)
				require.Equal(t, 10*time.Second, server.server.WriteTimeout)
				require.Equal(t, 60*time.Second, server.server.IdleTimeout)
			},
		},
		{
			name: "create server with CORS enabled",
			config: &config.APIConfig{
				Enabled:       true,
				ListenAddress: ":9090",
				ReadTimeout:   common.Duration{Duration: 30 * time.Second},
				WriteTimeout:  common.Duration{Duration: 5 * time.Minute},
				IdleTimeout:   common.Duration{Duration: 120 * time.Second},
				CORS: config.CORSConfig{
					Enabled:        true,
					AllowedOrigins: []string{"http://localhost:3000"},
				},
			},
			validate: func(t *testing.T, server *Server) {
				t.Helper()

				require.Equal(t, ":9090", server.server.Addr)
				require.Equal(t, 5*time.Minute, server.server.WriteTimeout)
				require.True(t, server.config.CORS.Enabled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := NewServer(tt.config, apimocks.NewCoinService(t), nil, logger.NewNopLogger())

			tt.validate(t, server)
		})
	}
}

func TestServer_Start_Disabled(t *testing.T) {
	t.Parallel()

	cfg := testAPIConfig(config.CORSConfig{})
	cfg.Enabled = false

	server := NewServer(cfg, apimocks.NewCoinService(t), nil, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start should return immediately when disabled
	done := make(chan error, 1)
	go func() {
		done <- server.Start(ctx)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(1 * time.Second):
		t.Fatal("Start() did not return when server is disabled")
	}
}

func TestServer_Start_GracefulShutdown(t *testing.T) {
	t.Parallel()

	server := NewServer(testAPIConfig(config.CORSConfig{}), apimocks.NewCoinService(t), nil, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.Start(ctx)
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second): // shutdownCtxTimeout + buffer
		t.Fatal("Server did not shutdown gracefully within timeout")
	}
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		path           string
		setupMock      func(svc *apimocks.CoinService)
		expectedStatus int
	}{
		{
			name:   "health",
			method: http.MethodGet,
			path:   "/health",
			setupMock: func(svc *apimocks.CoinService) {
				svc.EXPECT().CachedAt().Return(time.Time{}, false)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "list coins",
			method: http.MethodGet,
			path:   "/api/v1/coins",
			setupMock: func(svc *apimocks.CoinService) {
				svc.EXPECT().FetchWithRetry(mock.Anything, false).Return(testCoins(), nil)
				svc.EXPECT().CachedAt().Return(time.Now(), true)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "refresh coins",
			method: http.MethodPost,
			path:   "/api/v1/coins/refresh",
			setupMock: func(svc *apimocks.CoinService) {
				svc.EXPECT().FetchWithRetry(mock.Anything, true).Return(testCoins(), nil)
				svc.EXPECT().CachedAt().Return(time.Now(), true)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "clear cache",
			method: http.MethodDelete,
			path:   "/api/v1/coins/cache",
			setupMock: func(svc *apimocks.CoinService) {
				svc.EXPECT().ClearCache().Return()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "get coin",
			method: http.MethodGet,
			path:   "/api/v1/coins/0x0000000000000000000000000000000000000abc",
			setupMock: func(svc *apimocks.CoinService) {
				svc.EXPECT().FetchWithRetry(mock.Anything, false).Return(testCoins(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "archive disabled",
			method:         http.MethodGet,
			path:           "/api/v1/archive/coins",
			setupMock:      func(svc *apimocks.CoinService) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "GET refresh is treated as an address",
			method:         http.MethodGet,
			path:           "/api/v1/coins/refresh",
			setupMock:      func(svc *apimocks.CoinService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "method not allowed",
			method:         http.MethodPut,
			path:           "/api/v1/coins/cache",
			setupMock:      func(svc *apimocks.CoinService) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "unknown route",
			method:         http.MethodGet,
			path:           "/api/v1/unknown",
			setupMock:      func(svc *apimocks.CoinService) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := apimocks.NewCoinService(t)
			tt.setupMock(svc)

			server := NewServer(testAPIConfig(config.CORSConfig{}), svc, nil, logger.NewNopLogger())

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			server.Handler().ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestServer_Middleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		corsConfig     config.CORSConfig
		expectedOrigin string
	}{
		{
			name: "CORS middleware applied when enabled",
			corsConfig: config.CORSConfig{
				Enabled:        true,
				AllowedOrigins: []string{"http://localhost:3000"},
			},
			expectedOrigin: "http://localhost:3000",
		},
		{
			name: "CORS middleware not applied when disabled",
			corsConfig: config.CORSConfig{
				Enabled: false,
			},
			expectedOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := apimocks.NewCoinService(t)
			svc.EXPECT().CachedAt().Return(time.Time{}, false)

			server := NewServer(testAPIConfig(tt.corsConfig), svc, nil, logger.NewNopLogger())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			w := httptest.NewRecorder()

			server.Handler().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestServer_WithArchive(t *testing.T) {
	t.Parallel()

	archive := apimocks.NewArchiveReader(t)
	archive.EXPECT().Count(mock.Anything).Return(2, nil)
	archive.EXPECT().List(mock.Anything, 1, 1).Return(testCoins()[1:], nil)

	server := NewServer(testAPIConfig(config.CORSConfig{}), apimocks.NewCoinService(t), archive, logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/archive/coins?limit=1&offset=1", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"has_more":false`)
}

func TestServer_ArchivedCoinRoute(t *testing.T) {
	t.Parallel()

	want := testCoins()[0]
	reader := apimocks.NewArchiveReader(t)
	reader.EXPECT().Get(mock.Anything, want.Address).Return(want, nil)

	server := NewServer(testAPIConfig(config.CORSConfig{}), apimocks.NewCoinService(t), reader, logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/archive/coins/"+want.Address.Hex(), nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name":"First"`)
}
