package cmd

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
	"github.com/tensorplex-labs/rankgen/pkg/rankapi"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateJSON(t *testing.T) {
	out, err := execute(t, "generate",
		"--size", "3",
		"--r1-values", "0.2 0.3 0.5",
		"--r2-values", "0,5;0,3;0,2",
		"--search=true",
		"--json",
	)
	require.NoError(t, err)

	var resp rankapi.GenerateResponse
	require.NoError(t, sonic.UnmarshalString(out, &resp))

	assert.Equal(t, 3, resp.Size)
	assert.InDelta(t, 0.6, resp.ValueMetric, 1e-9)
	assert.Equal(t, 4.0, resp.RankMetric)
	require.NotNil(t, resp.R1Search)
	assert.InDelta(t, math.Cbrt(21), resp.R1Search.GeoMean[2], 1e-9)
}

func TestGenerateTable(t *testing.T) {
	out, err := execute(t, "generate",
		"--size", "12",
		"--r1-values", "",
		"--r2-values", "",
		"--a1", "0", "--b1", "1", "--m1", "0.5",
		"--a2", "0.2", "--b2", "0.8", "--m2", "0.3",
		"--search=false",
		"--seed", "7",
		"--json=false",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "R1 normed")
	assert.Contains(t, out, "Metric (ranks)")
	assert.Contains(t, out, ranking.Ellipsis)
}

func TestGenerateRejectsManualOverCap(t *testing.T) {
	_, err := execute(t, "generate",
		"--size", "11",
		"--r1-values", "0.1 0.1 0.1 0.1 0.1 0.1 0.1 0.1 0.1 0.1 0.1",
		"--r2-values", "",
		"--json=false",
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ranking.ErrInvalidParameter))
	assert.Contains(t, err.Error(), "In manual mode")
}

func TestGenerateRejectsBadTriangular(t *testing.T) {
	_, err := execute(t, "generate",
		"--size", "5",
		"--r1-values", "",
		"--r2-values", "",
		"--a1", "0.9", "--b1", "0.1", "--m1", "0.5",
		"--json=false",
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ranking.ErrInvalidParameter))
}

func TestSearchJSON(t *testing.T) {
	out, err := execute(t, "search",
		"--values", "2 3 5",
		"--p7", "0.1",
		"--q1", "0.1",
		"--json",
	)
	require.NoError(t, err)

	var resp rankapi.DifferenceSearchResponse
	require.NoError(t, sonic.UnmarshalString(out, &resp))

	assert.InDelta(t, 0.2, resp.Values[0], 1e-9)
	assert.InDelta(t, 0.3, resp.Search.MaxDiff, 1e-9)
	assert.Equal(t, 7.0, resp.Search.Advantage[2][0])
}

func TestSearchRejectsThresholds(t *testing.T) {
	_, err := execute(t, "search",
		"--values", "2 3 5",
		"--p7", "0.6",
		"--q1", "0.5",
		"--json=false",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p7 + q1 > 1")
}

func TestRequestReportsIgnoredEngineFlags(t *testing.T) {
	t.Setenv("CLIENT_RETRY_MAX", "0")
	t.Setenv("CLIENT_TIMEOUT", "1s")

	_, err := execute(t, "request",
		"--url", "http://127.0.0.1:1",
		"--size", "3",
		"--r1-values", "0.2 0.3 0.5",
		"--r2-values", "0.5 0.3 0.2",
		"--rank-method", "ordinal",
		"--seed", "9",
		"--json=false",
	)
	require.Error(t, err)

	assert.Equal(t, []string{"--rank-method", "--seed"}, ignoredFlags(requestCmd))
	assert.Contains(t, requestCmd.Long, "do\nnot apply")
}
