package main

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/faithmap/faithmap/internal/browse"
	"github.com/faithmap/faithmap/internal/classify"
	"github.com/faithmap/faithmap/internal/snapshot"
)

// splitAndTrim splits a comma-separated flag value, dropping empty parts.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func openStore() *snapshot.Store {
	return snapshot.NewStore(cfg.Data.Dir)
}

func newClassifier() *classify.Classifier {
	return classify.New(cfg.Classify.CultKeywords, cfg.Classify.Denominations)
}

// loadIndex reads the combined snapshot into a browse index.
func loadIndex(ctx context.Context) (*browse.Index, error) {
	list, err := openStore().LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return browse.NewIndex(list, time.Duration(cfg.Browse.CacheTTLMins)*time.Minute), nil
}

// addFilterFlags registers the list filter flags shared by the read commands.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", browse.AllTypes, "facility type: all, church, catholic, temple, cult")
	cmd.Flags().String("region", "", "region selector such as 서울 or 충북 (default: all)")
	cmd.Flags().String("query", "", "text matched against name, address and denomination")
}

func filterFromFlags(cmd *cobra.Command) browse.Filter {
	t, _ := cmd.Flags().GetString("type")
	r, _ := cmd.Flags().GetString("region")
	q, _ := cmd.Flags().GetString("query")
	return browse.Filter{Type: t, Region: r, Query: q}
}

func viewOptions() browse.ViewOptions {
	return browse.ViewOptions{
		Threshold:  cfg.Browse.ClusterThreshold,
		MaxMarkers: cfg.Browse.MaxMarkers,
	}
}
