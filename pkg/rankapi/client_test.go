package rankapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
)

// startTestServer serves a ranking server on a random local port.
func startTestServer(t *testing.T) string {
	t.Helper()

	server := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = server.App.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = server.App.ShutdownWithTimeout(time.Second)
	})

	return fmt.Sprintf("http://%s", ln.Addr().String())
}

func newTestClient(t *testing.T, baseURL string, zstdEnabled bool) *Client {
	t.Helper()

	client, err := NewClient(&ClientConfig{
		BaseURL:         baseURL,
		Timeout:         5 * time.Second,
		RetryMax:        0,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    time.Millisecond,
		ZstdCompression: zstdEnabled,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestClientGenerate(t *testing.T) {
	baseURL := startTestServer(t)

	for _, zstdEnabled := range []bool{true, false} {
		t.Run(fmt.Sprintf("zstd=%v", zstdEnabled), func(t *testing.T) {
			client := newTestClient(t, baseURL, zstdEnabled)
			ctx := context.Background()

			require.NoError(t, client.Health(ctx))

			resp, err := client.Generate(ctx, manualGenerateRequest())
			require.NoError(t, err)

			assert.Equal(t, 3, resp.Size)
			assert.InDelta(t, 0.6, resp.ValueMetric, 1e-9)
			assert.Equal(t, 4.0, resp.RankMetric)
			assert.Equal(t, []float64{1, 2, 3}, resp.Comparison.R1Ranks)
			assert.Equal(t, []float64{3, 2, 1}, resp.Comparison.R2Ranks)
		})
	}
}

func TestClientDifferenceSearch(t *testing.T) {
	client := newTestClient(t, startTestServer(t), true)

	resp, err := client.DifferenceSearch(context.Background(), DifferenceSearchRequest{
		Values:     []float64{0.2, 0.3, 0.5},
		Thresholds: ranking.DefaultThresholds(),
		Normalized: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.2, 0.3, 0.5}, resp.Values)
	assert.InDelta(t, math.Cbrt(21), resp.Search.GeoMean[2], 1e-9)
	assert.InDelta(t, 1, resp.Search.GeoMean[1], 1e-9)
}

func TestClientInvalidParameter(t *testing.T) {
	client := newTestClient(t, startTestServer(t), true)

	req := manualGenerateRequest()
	req.Size = 1

	_, err := client.Generate(context.Background(), req)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsInvalidParameter())
	assert.Contains(t, apiErr.Message, "Size should be > 1")
}

func TestClientUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := newTestClient(t, "http://"+addr, false)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = client.Generate(ctx, manualGenerateRequest())
	assert.Error(t, err)
	assert.Error(t, client.Health(ctx))
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(nil)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "http://localhost:8888", client.BaseURL())
	assert.NotNil(t, client.encoder)
	assert.NotNil(t, client.decoder)
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("RANKAPI_URL", "http://ranker:9000")
	t.Setenv("CLIENT_RETRY_MAX", "5")
	t.Setenv("CLIENT_ZSTD", "false")

	cfg, err := LoadClientConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://ranker:9000", cfg.BaseURL)
	assert.Equal(t, 5, cfg.RetryMax)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.ZstdCompression)
}
