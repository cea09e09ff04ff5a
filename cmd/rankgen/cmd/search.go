package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tensorplex-labs/rankgen/internal/input"
	"github.com/tensorplex-labs/rankgen/internal/ranking"
	"github.com/tensorplex-labs/rankgen/internal/render"
	"github.com/tensorplex-labs/rankgen/pkg/rankapi"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the pairwise difference search on one ranking",
	Long: `Search builds the difference, percent and advantage matrices of a ranking
and re-ranks it by the geometric means of the advantage rows. Values are
normalized first unless --normalized is given.`,
	Example: `  rankgen search --values "0.2 0.3 0.5" --p7 0.1 --q1 0.1`,
	RunE:    runSearch,
}

func init() {
	flags := searchCmd.Flags()
	flags.String("values", "", "ranking values, separated by spaces or ';'")
	flags.Bool("normalized", false, "values already sum to 1")
	flags.String("p7", "0.10", "share of the largest difference above which the advantage is 7")
	flags.String("q1", "0.10", "share of the largest difference below which the advantage is 1")
}

func runSearch(cmd *cobra.Command, args []string) error {
	values, err := input.ParseValues(viper.GetString("values"))
	if err != nil {
		return err
	}
	th, err := input.ParseThresholds(viper.GetString("p7"), viper.GetString("q1"))
	if err != nil {
		return err
	}
	opts, err := renderOptions()
	if err != nil {
		return err
	}

	if !viper.GetBool("normalized") {
		values = ranking.Normalize(values)
	}

	res, err := ranking.DifferenceSearch(values, th)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if viper.GetBool("json") {
		return printJSON(out, rankapi.DifferenceSearchResponse{
			Values: values,
			Search: *rankapi.NewSearchPayload(res),
		})
	}

	render.DifferenceSearch(out, "R", res, opts)
	return nil
}
