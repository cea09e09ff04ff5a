// Package cmd holds the rankgen subcommands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
	"github.com/tensorplex-labs/rankgen/internal/render"
	"github.com/tensorplex-labs/rankgen/internal/utils/logger"
)

var rootCmd = &cobra.Command{
	Use:   "rankgen",
	Short: "Generate and compare numeric rankings",
	Long: `rankgen samples two rankings (triangular distribution or manual values),
normalizes and ranks them, and measures how far apart they are. The pairwise
difference search re-ranks a ranking from its advantage matrix.

Commands:
    generate    compare two rankings locally
    search      run the difference search on one ranking
    serve       start the HTTP service
    request     run generate against a remote service
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}
		logger.InitWithOptions(logger.Options{
			Debug: viper.GetBool("debug"),
			Trace: viper.GetBool("trace"),
			Info:  viper.GetBool("info"),
		})
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .rankgen.yaml)")
	flags.Bool("debug", false, "sets log level to debug")
	flags.Bool("trace", false, "sets log level to trace")
	flags.Bool("info", false, "sets log level to info (default)")

	flags.String("rank-method", string(ranking.RankAverage), "tie handling: average or ordinal")
	flags.String("sampling", string(ranking.SamplingBranch), "triangular sampler: branch or inverse-cdf")
	flags.Uint64("seed", 0, "random seed, 0 seeds from the runtime")
	flags.Bool("halve-rank-metric", false, "report half the rank metric")
	flags.Int("max-size", ranking.DefaultMaxSize, "largest accepted ranking size")
	flags.Int("precision", ranking.DefaultPrecision, "decimal places shown")
	flags.Bool("full", false, "show every row and column instead of truncating")
	flags.Bool("plot", false, "draw bar charts of the weights")
	flags.Bool("json", false, "print JSON instead of tables")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(requestCmd)
}

// initConfig reads .rankgen.yaml and RANKGEN_* variables, then binds the
// command's flags so that explicitly set flags take precedence.
func initConfig(cmd *cobra.Command) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".rankgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("RANKGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return viper.BindPFlags(cmd.Flags())
}

func newGenerator() (*ranking.Generator, error) {
	opts := []ranking.GeneratorOption{
		ranking.WithRankMethod(ranking.RankMethod(strings.ToLower(viper.GetString("rank-method")))),
		ranking.WithSamplingMethod(ranking.SamplingMethod(strings.ToLower(viper.GetString("sampling")))),
		ranking.WithHalveRankMetric(viper.GetBool("halve-rank-metric")),
		ranking.WithMaxSize(viper.GetInt("max-size")),
	}
	if seed := viper.GetUint64("seed"); seed != 0 {
		opts = append(opts, ranking.WithSeed(seed))
	}
	return ranking.NewGenerator(opts...)
}

func renderOptions() (render.Options, error) {
	opts := render.DefaultOptions()
	opts.Precision = viper.GetInt("precision")
	if opts.Precision < 0 || opts.Precision > 16 {
		return opts, fmt.Errorf("precision must be within [0, 16], got %d", opts.Precision)
	}
	if viper.GetBool("full") {
		opts.Limit = 0
	}
	opts.Plot = viper.GetBool("plot")
	return opts, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
