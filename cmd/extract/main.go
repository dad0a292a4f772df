// Command extract runs one-off aggregations from the terminal: bulk
// Instagram profiles to CSV or JSON, or a single YouTube channel or
// Spotify lookup without standing up the API server.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/timahq/socialdata/internal/cache"
	"github.com/timahq/socialdata/internal/extractor"
	"github.com/timahq/socialdata/internal/provider/instagram"
	"github.com/timahq/socialdata/internal/provider/spotify"
	"github.com/timahq/socialdata/internal/provider/youtube"
	"github.com/timahq/socialdata/internal/report"
	"github.com/timahq/socialdata/pkg/config"
	"github.com/timahq/socialdata/pkg/logging"
)

var (
	format string
	output string
)

func main() {
	root := &cobra.Command{
		Use:           "extract",
		Short:         "Aggregate social media metrics from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&format, "format", "json", "output format: json or csv")
	root.PersistentFlags().StringVar(&output, "output", "", "output file (default stdout)")

	root.AddCommand(profilesCmd(), channelCmd(), artistCmd(), podcastCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService builds the full pipeline from configuration, the same wiring
// the server uses.
func newService() (*extractor.Service, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	// keep CLI output clean unless the operator asks for more
	cfg.Logging.Format = "text"
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	return extractor.New(&cfg.Extract,
		instagram.New(&cfg.Instagram),
		youtube.New(&cfg.YouTube),
		spotify.New(&cfg.Spotify),
		redisCache), nil
}

func profilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles <username>...",
		Short: "Aggregate one or more Instagram profiles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			results := svc.BulkProfiles(context.Background(), args)

			rows := make([]report.ProfileRow, 0, len(results))
			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "%s: %v\n", res.Username, res.Err)
					continue
				}
				rows = append(rows, res.Result.Row)
			}

			if err := writeRows(rows, report.ProfileColumns); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d accounts failed", failed, len(results))
			}
			return nil
		},
	}
}

func channelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channel <channel-id>",
		Short: "Aggregate a YouTube channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			res, err := svc.YouTubeChannel(context.Background(), args[0])
			if err != nil {
				return err
			}
			return writeRows([]report.ChannelRow{res.Row}, report.ChannelColumns)
		},
	}
}

func artistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "artist <name>",
		Short: "Look up a Spotify artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			res, err := svc.SpotifyArtist(context.Background(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(res)
		},
	}
}

func podcastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "podcast <name>",
		Short: "Look up a Spotify podcast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			res, err := svc.SpotifyPodcast(context.Background(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(res)
		},
	}
}

func outWriter() (io.Writer, func() error, error) {
	if output == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// writeRows renders a row slice as JSON or as CSV in the documented
// column order.
func writeRows[T any](rows []T, columns []string) error {
	if format == "json" {
		return writeJSON(rows)
	}
	if format != "csv" {
		return fmt.Errorf("unsupported format %q", format)
	}

	w, closeFn, err := outWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		// round-trip through JSON to reuse the documented column names;
		// UseNumber keeps large counters verbatim instead of drifting
		// through float64 into scientific notation
		raw, err := json.Marshal(row)
		if err != nil {
			return err
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var fields map[string]interface{}
		if err := dec.Decode(&fields); err != nil {
			return err
		}

		record := make([]string, 0, len(columns))
		for _, col := range columns {
			v, ok := fields[col]
			if !ok || v == nil {
				record = append(record, "")
				continue
			}
			record = append(record, fmt.Sprint(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(v interface{}) error {
	w, closeFn, err := outWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
