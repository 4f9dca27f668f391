package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/boundary"
	"github.com/faithmap/faithmap/internal/snapshot"
)

const sigunguMapFile = "sigungu-map.json"

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Region maintenance",
}

var regionsAssignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign each facility to the 시군구 polygon containing it",
	Long: `Loads a WGS84 시군구 boundary shapefile, rewrites the region of every
facility that falls inside a polygon to "<시도> <시군구>", and writes a
facility id to 시군구 code map next to the snapshots.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if s, _ := cmd.Flags().GetString("shapefile"); s != "" {
			cfg.Boundary.Shapefile = s
		}
		if err := cfg.Validate("regions"); err != nil {
			return err
		}

		idx, err := boundary.Load(cfg.Boundary.Shapefile, boundary.LoadOptions{
			NameField: cfg.Boundary.NameField,
			CodeField: cfg.Boundary.CodeField,
			Charset:   cfg.Boundary.Charset,
		})
		if err != nil {
			return err
		}
		zap.L().Info("boundaries loaded", zap.Int("areas", idx.Len()))

		store := openStore()
		codes := make(map[string]string)
		located, total := 0, 0
		for _, name := range snapshot.CategoryFiles {
			list, err := store.Load(ctx, name)
			if err != nil {
				return err
			}
			n, m := idx.Assign(list)
			for id, code := range m {
				codes[id] = code
			}
			located += n
			total += len(list)
			if n == 0 {
				continue
			}
			if err := store.Save(ctx, name, list); err != nil {
				return err
			}
		}

		if _, err := store.Rebuild(ctx); err != nil {
			return err
		}

		mapPath, _ := cmd.Flags().GetString("map-out")
		if mapPath == "" {
			mapPath = filepath.Join(cfg.Data.Dir, sigunguMapFile)
		}
		if err := writeJSON(mapPath, codes); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d facilities located; map written to %s\n", located, total, mapPath)
		return nil
	},
}

func init() {
	regionsAssignCmd.Flags().String("shapefile", "", "시군구 boundary .shp (default: boundary.shapefile)")
	regionsAssignCmd.Flags().String("map-out", "", "facility to 시군구 code map (default: <data-dir>/"+sigunguMapFile+")")
	regionsCmd.AddCommand(regionsAssignCmd)
	rootCmd.AddCommand(regionsCmd)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal json")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}
