package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/enrich"
	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/internal/snapshot"
)

var websitesCmd = &cobra.Command{
	Use:   "websites",
	Short: "Maintain facility homepage links",
}

var websitesApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a YAML file of manual website overrides to every snapshot file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			path = cfg.Enrich.OverridesFile
		}
		onlyEmpty, _ := cmd.Flags().GetBool("only-empty")

		overrides, err := enrich.LoadOverrides(path)
		if err != nil {
			return err
		}

		store := openStore()
		total := 0
		for _, name := range snapshot.CategoryFiles {
			list, err := store.Load(ctx, name)
			if err != nil {
				return err
			}
			n := overrides.Apply(list, onlyEmpty)
			if n == 0 {
				continue
			}
			if err := store.Save(ctx, name, list); err != nil {
				return err
			}
			zap.L().Info("websites updated", zap.String("file", name), zap.Int("count", n))
			total += n
		}

		if _, err := store.Rebuild(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d overrides applied\n", total, len(overrides))
		return nil
	},
}

var websitesMissingCmd = &cobra.Command{
	Use:   "missing",
	Short: "List facilities without a usable website",
	RunE: func(cmd *cobra.Command, _ []string) error {
		list, err := openStore().LoadAll(cmd.Context())
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		out := cmd.OutOrStdout()
		missing := 0
		for _, f := range list {
			if model.IsValidWebsite(f.Website) {
				continue
			}
			missing++
			if limit <= 0 || missing <= limit {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", f.ID, f.Type, f.Name, f.KakaoURL)
			}
		}
		fmt.Fprintf(out, "%d of %d facilities have no website\n", missing, len(list))
		return nil
	},
}

func init() {
	websitesApplyCmd.Flags().String("file", "", "overrides YAML (default: enrich.overrides_file)")
	websitesApplyCmd.Flags().Bool("only-empty", false, "leave facilities that already have a website untouched")
	websitesMissingCmd.Flags().Int("limit", 50, "maximum rows to print (0 = all)")
	websitesCmd.AddCommand(websitesApplyCmd, websitesMissingCmd)
	rootCmd.AddCommand(websitesCmd)
}
