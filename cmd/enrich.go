package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/browser"
	"github.com/faithmap/faithmap/internal/enrich"
	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/pkg/kakaoplace"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill website, service time and pastor from Kakao place detail pages",
	Long: `Visits the Kakao place detail of every facility in the selected snapshot
files. The place JSON endpoint is tried first; the rendered detail page is
used as a fallback unless --no-browser is given.

Each file is rewritten in place with a checkpoint every enrich.save_interval
facilities, so an interrupted run keeps its progress. The combined snapshot
is rebuilt at the end.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("enrich"); err != nil {
			return err
		}

		onlyMissing, _ := cmd.Flags().GetBool("only-missing")
		noBrowser, _ := cmd.Flags().GetBool("no-browser")
		plainHTTP, _ := cmd.Flags().GetBool("plain-http")
		files := cfg.Enrich.Files
		if s, _ := cmd.Flags().GetString("files"); s != "" {
			files = splitAndTrim(s)
		}

		chain, closeChain, err := buildDetailChain(ctx, !noBrowser && cfg.Enrich.Browser, plainHTTP)
		if err != nil {
			return err
		}
		defer closeChain()

		var overrides enrich.Overrides
		if cfg.Enrich.OverridesFile != "" {
			overrides, err = enrich.LoadOverrides(cfg.Enrich.OverridesFile)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		store := openStore()
		enricher := enrich.New(chain)
		for _, name := range files {
			list, err := store.Load(ctx, name)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				zap.L().Info("skipping empty snapshot", zap.String("file", name))
				continue
			}

			opts := enrich.Options{
				Label:        name,
				BatchSize:    cfg.Enrich.BatchSize,
				SaveInterval: cfg.Enrich.SaveInterval,
				Timeout:      cfg.Enrich.Timeout(),
				OnlyMissing:  onlyMissing,
				Checkpoint: func(ctx context.Context, processed, remaining []model.Facility) error {
					return store.Checkpoint(ctx, name, processed, remaining)
				},
			}
			result, stats, err := enricher.Run(ctx, list, opts)
			if err != nil {
				return eris.Wrapf(err, "enrich %s", name)
			}
			if n := overrides.Apply(result, false); n > 0 {
				zap.L().Info("applied website overrides", zap.String("file", name), zap.Int("count", n))
			}
			if err := store.Save(ctx, name, result); err != nil {
				return err
			}
			fmt.Fprintf(out, "%-16s %d facilities, %d attempted, %d updated, %d failed, %d with website (%s)\n",
				name, stats.Total, stats.Attempted, stats.Updated, stats.Failed, stats.WithWebsite,
				stats.Elapsed.Round(time.Second))
		}

		total, err := store.Rebuild(ctx)
		if err != nil {
			return eris.Wrap(err, "enrich: rebuild snapshot")
		}
		fmt.Fprintf(out, "rebuilt combined snapshot: %d facilities\n", total)
		return nil
	},
}

func init() {
	enrichCmd.Flags().Bool("only-missing", false, "only visit facilities without a website")
	enrichCmd.Flags().String("files", "", "comma-separated snapshot files (default: enrich.files)")
	enrichCmd.Flags().Bool("no-browser", false, "skip the headless browser fallback")
	enrichCmd.Flags().Bool("plain-http", false, "fetch place JSON with net/http instead of the browser TLS profile")
	rootCmd.AddCommand(enrichCmd)
}

// buildDetailChain assembles the detail sources in priority order. The
// returned func releases the browser, if one was started.
func buildDetailChain(ctx context.Context, useBrowser, plainHTTP bool) (*enrich.Chain, func(), error) {
	var transport kakaoplace.Fetcher
	if plainHTTP {
		transport = kakaoplace.NewHTTPFetcher(nil)
	} else {
		tf, err := kakaoplace.NewBrowserFetcher(cfg.Enrich.Timeout())
		if err != nil {
			return nil, nil, err
		}
		transport = tf
	}
	place := enrich.NewPlaceSource(kakaoplace.NewClient(
		kakaoplace.WithBaseURL(cfg.Kakao.PlaceBaseURL),
		kakaoplace.WithFetcher(transport),
	))

	if !useBrowser {
		return enrich.NewChain(place), func() {}, nil
	}

	chrome, err := browser.NewChrome(ctx, browser.Options{
		ExecPath: cfg.Enrich.ChromePath,
		Timeout:  cfg.Enrich.Timeout(),
		Settle:   time.Duration(cfg.Enrich.SettleMillis) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, eris.Wrap(err, "enrich: start browser")
	}
	closeFn := func() {
		if err := chrome.Close(); err != nil {
			zap.L().Warn("close browser", zap.Error(err))
		}
	}
	return enrich.NewChain(place, enrich.NewBrowserSource(chrome)), closeFn, nil
}
