package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faithmap/faithmap/internal/browse"
	"github.com/faithmap/faithmap/internal/model"
)

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Print the markers or grid clusters visible in a map viewport",
	RunE: func(cmd *cobra.Command, _ []string) error {
		vp := browse.KoreaViewport()
		if s, _ := cmd.Flags().GetString("bbox"); s != "" {
			var err error
			if vp, err = browse.ParseBBox(s); err != nil {
				return err
			}
		}
		zoom, _ := cmd.Flags().GetFloat64("zoom")

		idx, err := loadIndex(cmd.Context())
		if err != nil {
			return err
		}
		v := idx.View(filterFromFlags(cmd), vp, zoom, viewOptions())

		out := cmd.OutOrStdout()
		if !v.Clustered() {
			for _, f := range v.Markers {
				fmt.Fprintf(out, "marker  %.6f %.6f  %-8s %s\n", f.Lat, f.Lng, f.Type, f.Name)
			}
			fmt.Fprintf(out, "%d visible, %d markers at zoom %.1f\n", v.Visible, len(v.Markers), zoom)
			return nil
		}
		for _, c := range v.Clusters {
			fmt.Fprintf(out, "cluster %-10s %.4f %.4f  %5d  church=%d catholic=%d temple=%d cult=%d\n",
				c.Key, c.Lat, c.Lng, c.Count,
				c.Counts[model.Church], c.Counts[model.Catholic], c.Counts[model.Temple], c.Counts[model.Cult])
		}
		fmt.Fprintf(out, "%d visible, %d clusters (grid %.1f°) at zoom %.1f\n",
			v.Visible, len(v.Clusters), browse.GridSize(zoom), zoom)
		return nil
	},
}

func init() {
	addFilterFlags(clustersCmd)
	clustersCmd.Flags().String("bbox", "", "viewport as south,west,north,east (default: all of Korea)")
	clustersCmd.Flags().Float64("zoom", 7, "map zoom level")
	rootCmd.AddCommand(clustersCmd)
}
