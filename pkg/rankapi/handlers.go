package rankapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
)

// RegisterRoutes serves the generate and difference search routes backed by gen.
func RegisterRoutes(s *Server, gen *ranking.Generator, precision int) {
	ServeRoute(s, GenerateHandler(gen, precision))
	ServeRoute(s, DifferenceSearchHandler())
}

func GenerateHandler(gen *ranking.Generator, defaultPrecision int) RouterHandler[GenerateRequest, GenerateResponse] {
	return func(c *fiber.Ctx, req GenerateRequest) (GenerateResponse, error) {
		precision := defaultPrecision
		if req.Precision != nil {
			precision = *req.Precision
		}
		if precision < 0 || precision > 16 {
			return GenerateResponse{}, fiber.NewError(fiber.StatusBadRequest, "precision must be within [0, 16]")
		}

		g, err := gen.Generate(ranking.GenerateRequest{
			Size:       req.Size,
			R1:         req.R1,
			R2:         req.R2,
			Thresholds: req.Thresholds,
		})
		if err != nil {
			return GenerateResponse{}, err
		}

		log.Info().
			Str("id", g.ID.String()).
			Int("size", g.Size).
			Float64("value_metric", g.Comparison.ValueMetric).
			Float64("rank_metric", g.Comparison.RankMetric).
			Msg("generate handled")

		return NewGenerateResponse(g, precision), nil
	}
}

func DifferenceSearchHandler() RouterHandler[DifferenceSearchRequest, DifferenceSearchResponse] {
	return func(c *fiber.Ctx, req DifferenceSearchRequest) (DifferenceSearchResponse, error) {
		values := req.Values
		if !req.Normalized {
			values = ranking.Normalize(values)
		}

		res, err := ranking.DifferenceSearch(values, req.Thresholds)
		if err != nil {
			return DifferenceSearchResponse{}, err
		}

		return DifferenceSearchResponse{
			Values: values,
			Search: *NewSearchPayload(res),
		}, nil
	}
}
