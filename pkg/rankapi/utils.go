package rankapi

import (
	"github.com/tensorplex-labs/rankgen/internal/ranking"
)

// createResponse creates a StdResponse with the given body and error
func createResponse[T any](body T, err error) StdResponse[T] {
	if err != nil {
		errMsg := err.Error()
		return StdResponse[T]{
			Body:  body,
			Error: &errMsg,
		}
	}
	return StdResponse[T]{
		Body:  body,
		Error: nil,
	}
}

func NewSearchPayload(res *ranking.DifferenceSearchResult) *SearchPayload {
	if res == nil {
		return nil
	}
	return &SearchPayload{
		Thresholds:    res.Thresholds,
		MaxDiff:       res.MaxDiff,
		Diff:          ranking.MatrixRows(res.Diff),
		Percent:       ranking.MatrixRows(res.Percent),
		Advantage:     ranking.MatrixRows(res.Advantage),
		GeoMean:       res.GeoMean,
		GeoMeanNormed: res.GeoMeanNormed,
	}
}

func NewGenerateResponse(g *ranking.Generation, precision int) GenerateResponse {
	c := g.Comparison
	return GenerateResponse{
		ID:          g.ID.String(),
		CreatedAt:   g.CreatedAt.UnixNano(),
		Size:        g.Size,
		RankMethod:  string(c.RankMethod),
		ValueMetric: c.ValueMetric,
		RankMetric:  c.RankMetric,
		Comparison: Comparison{
			R1:       c.R1,
			R2:       c.R2,
			R1Normed: c.R1Normed,
			R2Normed: c.R2Normed,
			Diff:     c.Diff,
			R1Ranks:  c.R1Ranks,
			R2Ranks:  c.R2Ranks,
			RankDiff: c.RankDiff,
		},
		Table:    ranking.ComparisonTable(c, precision),
		R1Search: NewSearchPayload(g.R1Search),
		R2Search: NewSearchPayload(g.R2Search),
	}
}
