package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/faithmap/faithmap/internal/browse"
	"github.com/faithmap/faithmap/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive terminal browser over the snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("browse"); err != nil {
			return err
		}
		idx, err := loadIndex(cmd.Context())
		if err != nil {
			return err
		}

		opts := tui.Options{PageSize: cfg.Browse.PageSize, Viewport: browse.KoreaViewport()}
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lng, _ := cmd.Flags().GetFloat64("lng")
			opts.Origin = &browse.Origin{Lat: lat, Lng: lng}
		}
		if s, _ := cmd.Flags().GetString("bbox"); s != "" {
			if opts.Viewport, err = browse.ParseBBox(s); err != nil {
				return err
			}
		}

		p := tea.NewProgram(tui.New(idx, opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return eris.Wrap(err, "browse")
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().Float64("lat", 0, "your latitude, for distances in the detail view")
	browseCmd.Flags().Float64("lng", 0, "your longitude, for distances in the detail view")
	browseCmd.Flags().String("bbox", "", "viewport for the map summary as south,west,north,east")
	rootCmd.AddCommand(browseCmd)
}
