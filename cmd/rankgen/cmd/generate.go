package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tensorplex-labs/rankgen/internal/input"
	"github.com/tensorplex-labs/rankgen/internal/ranking"
	"github.com/tensorplex-labs/rankgen/internal/render"
	"github.com/tensorplex-labs/rankgen/pkg/rankapi"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate two rankings and compare them",
	Long: `Generate realises R1 and R2, either sampled from triangular distributions
(--a1 --b1 --m1, --a2 --b2 --m2) or from manual values (--r1-values,
--r2-values, at most 10 alternatives), and prints the comparison table with
the value and rank metrics. --search also runs the difference search on both
normalized rankings with thresholds --p7 and --q1.`,
	Example: `  rankgen generate --size 5 --a1 0 --b1 1 --m1 0.5 --a2 0.2 --b2 0.9 --m2 0.3
  rankgen generate --size 3 --r1-values "0.2 0.3 0.5" --r2-values "0.5;0.3;0.2" --search`,
	RunE: runGenerate,
}

func init() {
	registerGenerateFlags(generateCmd.Flags())
}

func registerGenerateFlags(flags *pflag.FlagSet) {
	flags.String("size", "10", "number of alternatives")
	for _, r := range []string{"1", "2"} {
		flags.String("a"+r, "0", "triangular lower limit of R"+r)
		flags.String("b"+r, "1", "triangular upper limit of R"+r)
		flags.String("m"+r, "0.5", "triangular mode of R"+r)
		flags.String("r"+r+"-values", "", "manual values of R"+r+", separated by spaces or ';'")
	}
	flags.Bool("search", false, "run the difference search on both rankings")
	flags.String("p7", "0.10", "share of the largest difference above which the advantage is 7")
	flags.String("q1", "0.10", "share of the largest difference below which the advantage is 1")
}

// parseSource reads R1 or R2 from the bound flags. Manual values win over
// triangular parameters.
func parseSource(r string) (ranking.Source, error) {
	if raw := viper.GetString("r" + r + "-values"); raw != "" {
		values, err := input.ParseManualValues(raw)
		if err != nil {
			return ranking.Source{}, fmt.Errorf("R%s: %w", r, err)
		}
		return ranking.ManualSource(values...), nil
	}

	params, err := input.ParseTriangular(
		viper.GetString("a"+r),
		viper.GetString("b"+r),
		viper.GetString("m"+r),
	)
	if err != nil {
		return ranking.Source{}, fmt.Errorf("R%s: %w", r, err)
	}
	return ranking.TriangularSource(params.A, params.B, params.M), nil
}

func parseGenerateRequest() (ranking.GenerateRequest, error) {
	var req ranking.GenerateRequest

	size, err := input.ParseSize(viper.GetString("size"), viper.GetInt("max-size"))
	if err != nil {
		return req, err
	}
	req.Size = size

	if req.R1, err = parseSource("1"); err != nil {
		return req, err
	}
	if req.R2, err = parseSource("2"); err != nil {
		return req, err
	}

	if viper.GetBool("search") {
		th, err := input.ParseThresholds(viper.GetString("p7"), viper.GetString("q1"))
		if err != nil {
			return req, err
		}
		req.Thresholds = &th
	}

	return req, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req, err := parseGenerateRequest()
	if err != nil {
		return err
	}
	opts, err := renderOptions()
	if err != nil {
		return err
	}

	gen, err := newGenerator()
	if err != nil {
		return err
	}

	g, err := gen.Generate(req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if viper.GetBool("json") {
		return printJSON(out, rankapi.NewGenerateResponse(g, opts.Precision))
	}

	render.Generation(out, g, opts)
	if opts.Plot {
		labels := ranking.AlternativeLabels(g.Size)
		render.Bars(out, "R1 normed", labels, g.Comparison.R1Normed)
		render.Bars(out, "R2 normed", labels, g.Comparison.R2Normed)
	}
	return nil
}
