package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "faithmap",
	Short: "Religious facility directory for Korea",
	Long: `Collects churches, catholic parishes and temples from the Kakao and Naver
local search APIs, enriches them from detail pages, and serves filtered
list, map and detail views over the resulting JSON snapshots.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
			cfg.Data.Dir = dir
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "snapshot directory (default: data.dir from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
