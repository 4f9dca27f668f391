package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/collect"
	"github.com/faithmap/faithmap/internal/region"
	"github.com/faithmap/faithmap/internal/snapshot"
	"github.com/faithmap/faithmap/pkg/kakao"
	"github.com/faithmap/faithmap/pkg/naver"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Search the provider APIs for every region and keyword and upsert the snapshot",
	Long: `Builds one search target per region and facility keyword, queries the
selected providers in concurrent batches, and merges the hits into the JSON
snapshot files.

Regions come from --regions, --regions-file, or collect.regions_file /
collect.regions in config, in that order.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := zap.L().With(zap.String("command", "collect"))

		if s, _ := cmd.Flags().GetString("sources"); s != "" {
			cfg.Collect.Sources = splitAndTrim(s)
		}
		if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
			cfg.Collect.Concurrency = n
		}
		if err := cfg.Validate("collect"); err != nil {
			return err
		}

		regions, err := collectRegions(ctx, cmd)
		if err != nil {
			return err
		}
		if len(regions) == 0 {
			return eris.New("collect: no regions (use --regions or --regions-file)")
		}

		keywords := collect.DefaultKeywords
		if kw, _ := cmd.Flags().GetStringSlice("keywords"); len(kw) > 0 {
			keywords, err = collect.ParseKeywords(kw)
			if err != nil {
				return err
			}
		}

		sources, err := buildSources().Select(cfg.Collect.Sources)
		if err != nil {
			return err
		}

		targets := collect.Targets(regions, keywords)
		log.Info("starting collection",
			zap.Strings("sources", cfg.Collect.Sources),
			zap.Int("regions", len(regions)),
			zap.Int("keywords", len(keywords)),
			zap.Int("targets", len(targets)),
		)

		res, err := collect.NewCollector(sources, cfg.Collect.Concurrency).Run(ctx, targets)
		if err != nil {
			return eris.Wrap(err, "collect")
		}

		up, err := openStore().Upsert(ctx, strings.Join(cfg.Collect.Sources, "+"), res.Facilities)
		if err != nil {
			return eris.Wrap(err, "collect: upsert snapshot")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "run %s: %d targets (%d failed), %d hits in %s\n",
			res.RunID, res.Targets, res.Failed, len(res.Facilities), res.Elapsed.Round(time.Millisecond))
		fmt.Fprintf(out, "snapshot: %d added, %d updated, %d rejected, %d total\n",
			up.Added, up.Updated, up.Rejected, up.Total)
		for _, name := range snapshot.CategoryFiles {
			fmt.Fprintf(out, "  %-16s %d\n", name, up.Counts[name])
		}
		return nil
	},
}

func init() {
	collectCmd.Flags().String("sources", "", "comma-separated providers: kakao, naver (default: collect.sources)")
	collectCmd.Flags().String("regions", "", "comma-separated region names, e.g. \"서울특별시 강남구\"")
	collectCmd.Flags().String("regions-file", "", "legal district CSV (code, 시도, 시군구, 읍면동, ...)")
	collectCmd.Flags().String("charset", "", "regions file encoding: utf-8 or euc-kr (default: collect.charset)")
	collectCmd.Flags().StringSlice("keywords", nil, "keyword=type pairs replacing the default table, e.g. 교회=church")
	collectCmd.Flags().Int("concurrency", 0, "targets searched per batch (default: collect.concurrency)")
	rootCmd.AddCommand(collectCmd)
}

// collectRegions resolves the region list from flags, then config.
func collectRegions(ctx context.Context, cmd *cobra.Command) ([]string, error) {
	if s, _ := cmd.Flags().GetString("regions"); s != "" {
		return splitAndTrim(s), nil
	}

	charset, _ := cmd.Flags().GetString("charset")
	if charset == "" {
		charset = cfg.Collect.Charset
	}
	path, _ := cmd.Flags().GetString("regions-file")
	if path == "" {
		path = cfg.Collect.RegionsFile
	}
	if path != "" {
		return region.LoadFile(ctx, path, charset)
	}
	return cfg.Collect.Regions, nil
}

// buildSources registers every provider whose credentials are configured.
func buildSources() *collect.Registry {
	reg := collect.NewRegistry()
	classifier := newClassifier()

	if cfg.Kakao.RestKey != "" {
		client := kakao.NewClient(cfg.Kakao.RestKey, kakao.WithBaseURL(cfg.Kakao.BaseURL))
		reg.Register(collect.NewKakaoSource(client, classifier,
			collect.NewLimiter(cfg.Collect.RateLimit),
			collect.WithMaxPages(cfg.Collect.MaxPages),
		))
	}
	if cfg.Naver.ClientID != "" && cfg.Naver.ClientSecret != "" {
		client := naver.NewClient(cfg.Naver.ClientID, cfg.Naver.ClientSecret, naver.WithBaseURL(cfg.Naver.BaseURL))
		reg.Register(collect.NewNaverSource(client, classifier,
			collect.NewLimiter(cfg.Collect.RateLimit),
			cfg.Naver.Display,
		))
	}
	return reg
}
