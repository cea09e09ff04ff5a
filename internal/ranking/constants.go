package ranking

const (
	MinSize        = 2
	DefaultMaxSize = 1000
	// LargeMaxSize is the upper bound accepted when the size limit is raised.
	LargeMaxSize  = 1_000_000
	MaxManualSize = 10
	// SearchMaxSize bounds the difference search, which allocates n x n matrices.
	SearchMaxSize = DefaultMaxSize

	DefaultPrecision = 4
	DisplayLimit     = 10

	AdvantageEqual    = 1.0
	AdvantageModerate = 3.0
	AdvantageStrong   = 7.0
)

func DefaultThresholds() Thresholds {
	return Thresholds{
		P7: 0.1,
		Q1: 0.1,
	}
}
