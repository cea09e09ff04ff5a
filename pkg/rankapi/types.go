package rankapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
)

const (
	// Server defaults
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8888
	DefaultBodyLimit  = 4 * 1024 * 1024 // 4MB

	// Client defaults
	DefaultClientTimeout = 30 // seconds

	HealthRoute = "/health"
)

// Server exposes the ranking engine over HTTP.
type Server struct {
	App    *fiber.App
	config *ServerConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	BodyLimit int
}

// StdResponse represents the standardized response structure
type StdResponse[T any] struct {
	Body  T       `json:"body"`
	Error *string `json:"error,omitempty"`
}

// RouterHandler is a generic handler function type
type RouterHandler[Req, Resp any] func(*fiber.Ctx, Req) (Resp, error)

type GenerateRequest struct {
	Size       int                 `json:"size"`
	R1         ranking.Source      `json:"r1"`
	R2         ranking.Source      `json:"r2"`
	Thresholds *ranking.Thresholds `json:"thresholds,omitempty"`
	Precision  *int                `json:"precision,omitempty"`
}

type GenerateResponse struct {
	ID          string         `json:"id"`
	CreatedAt   int64          `json:"created_at"` // unix nanoseconds
	Size        int            `json:"size"`
	RankMethod  string         `json:"rank_method"`
	ValueMetric float64        `json:"value_metric"`
	RankMetric  float64        `json:"rank_metric"`
	Comparison  Comparison     `json:"comparison"`
	Table       ranking.Table  `json:"table"`
	R1Search    *SearchPayload `json:"r1_search,omitempty"`
	R2Search    *SearchPayload `json:"r2_search,omitempty"`
}

type Comparison struct {
	R1       []float64 `json:"r1"`
	R2       []float64 `json:"r2"`
	R1Normed []float64 `json:"r1_normed"`
	R2Normed []float64 `json:"r2_normed"`
	Diff     []float64 `json:"diff"`
	R1Ranks  []float64 `json:"r1_ranks"`
	R2Ranks  []float64 `json:"r2_ranks"`
	RankDiff []float64 `json:"rank_diff"`
}

type SearchPayload struct {
	Thresholds    ranking.Thresholds `json:"thresholds"`
	MaxDiff       float64            `json:"max_diff"`
	Diff          [][]float64        `json:"diff"`
	Percent       [][]float64        `json:"percent"`
	Advantage     [][]float64        `json:"advantage"`
	GeoMean       []float64          `json:"geo_mean"`
	GeoMeanNormed []float64          `json:"geo_mean_normed"`
}

// DifferenceSearchRequest runs the pairwise search on one ranking.
// Values are normalized first unless Normalized is set.
type DifferenceSearchRequest struct {
	Values     []float64          `json:"values"`
	Thresholds ranking.Thresholds `json:"thresholds"`
	Normalized bool               `json:"normalized"`
}

type DifferenceSearchResponse struct {
	Values []float64     `json:"values"`
	Search SearchPayload `json:"search"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
