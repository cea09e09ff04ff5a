package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
	"github.com/tensorplex-labs/rankgen/internal/render"
	"github.com/tensorplex-labs/rankgen/pkg/rankapi"
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Run generate on a remote rankgen service",
	Long: `Request takes the same ranking flags as generate and sends them to a
running service. The address comes from --url or RANKAPI_URL; CLIENT_TIMEOUT,
CLIENT_RETRY_MAX and CLIENT_ZSTD tune the client.

Engine flags (--rank-method, --sampling, --seed, --halve-rank-metric) do
not apply: the service uses its own configuration. --max-size only bounds
--size before the request is sent.`,
	RunE: runRequest,
}

func init() {
	registerGenerateFlags(requestCmd.Flags())
	requestCmd.Flags().String("url", "", "service base URL (default RANKAPI_URL)")
}

// serverSideFlags are decided by the service's configuration.
var serverSideFlags = []string{"rank-method", "sampling", "seed", "halve-rank-metric"}

// ignoredFlags lists the server side flags set on cmd.
func ignoredFlags(cmd *cobra.Command) []string {
	var ignored []string
	for _, name := range serverSideFlags {
		if cmd.Flags().Changed(name) {
			ignored = append(ignored, "--"+name)
		}
	}
	return ignored
}

func runRequest(cmd *cobra.Command, args []string) error {
	if ignored := ignoredFlags(cmd); len(ignored) > 0 {
		log.Warn().
			Strs("flags", ignored).
			Msg("engine flags are ignored by request; the service configuration applies")
	}

	req, err := parseGenerateRequest()
	if err != nil {
		return err
	}
	opts, err := renderOptions()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	clientConfig, err := rankapi.LoadClientConfig(ctx)
	if err != nil {
		return err
	}
	if url := viper.GetString("url"); url != "" {
		clientConfig.BaseURL = url
	}

	client, err := rankapi.NewClient(clientConfig)
	if err != nil {
		return err
	}
	defer client.Close()

	precision := opts.Precision
	resp, err := client.Generate(ctx, rankapi.GenerateRequest{
		Size:       req.Size,
		R1:         req.R1,
		R2:         req.R2,
		Thresholds: req.Thresholds,
		Precision:  &precision,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if viper.GetBool("json") {
		return printJSON(out, resp)
	}

	printGenerateResponse(out, resp, opts)
	return nil
}

func printGenerateResponse(w io.Writer, resp rankapi.GenerateResponse, opts render.Options) {
	fmt.Fprintf(w, "Generation %s (size %d)\n", resp.ID, resp.Size)
	fmt.Fprintln(w, render.Table(resp.Table.Truncate(opts.Limit)))
	fmt.Fprintf(w, "Metric (values): %s\n", ranking.FormatValue(resp.ValueMetric, opts.Precision))
	fmt.Fprintf(w, "Metric (ranks):  %s\n", ranking.FormatValue(resp.RankMetric, opts.Precision))

	for _, s := range []struct {
		name   string
		search *rankapi.SearchPayload
	}{
		{"R1", resp.R1Search},
		{"R2", resp.R2Search},
	} {
		if s.search == nil {
			continue
		}
		fmt.Fprintf(w, "\n%s geometric means (max diff=%s)\n", s.name, ranking.FormatValue(s.search.MaxDiff, opts.Precision))
		table := ranking.VectorTable([]string{"geo mean", "geo mean normed"}, opts.Precision, s.search.GeoMean, s.search.GeoMeanNormed)
		fmt.Fprintln(w, render.Table(table.Truncate(opts.Limit)))
		if opts.Plot {
			render.Bars(w, s.name+" geometric mean weights", nil, s.search.GeoMeanNormed)
		}
	}
}
