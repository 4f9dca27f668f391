package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/faithmap/faithmap/internal/browse"
	"github.com/faithmap/faithmap/internal/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the filtered facility list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("browse"); err != nil {
			return err
		}
		idx, err := loadIndex(cmd.Context())
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		if size <= 0 {
			size = cfg.Browse.PageSize
		}
		f := filterFromFlags(cmd)

		var origin *browse.Origin
		if s, _ := cmd.Flags().GetString("near"); s != "" {
			if origin, err = parseOrigin(s); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if id, _ := cmd.Flags().GetString("id"); id != "" {
			fc, ok := idx.Find(id)
			if !ok {
				return eris.Errorf("list: facility %s not found", id)
			}
			printDetail(out, browse.Detail(fc, origin))
			return nil
		}

		if origin != nil {
			limit, _ := cmd.Flags().GetInt("limit")
			ranked := browse.Nearest(idx.Filter(f), origin.Lat, origin.Lng, limit)
			if len(ranked) == 0 {
				fmt.Fprintln(out, "no facilities match")
				return nil
			}
			for _, r := range ranked {
				fmt.Fprintf(out, "%7.1fkm %-12s %-4s %-24s %s\n", r.DistanceKm, r.ID, r.Type.Label(), r.Name, r.Region)
			}
			return nil
		}

		p := idx.Page(f, page, size)
		printStats(out, idx.Stats(f))
		if p.Total == 0 {
			fmt.Fprintln(out, "no facilities match")
			return nil
		}
		for _, fc := range p.Items {
			fmt.Fprintf(out, "%-12s %-4s %-24s %s\n", fc.ID, fc.Type.Label(), fc.Name, fc.Region)
		}
		fmt.Fprintf(out, "page %d of %d (%d results)\n", p.Page, p.PageCount, p.Total)
		return nil
	},
}

func init() {
	addFilterFlags(listCmd)
	listCmd.Flags().Int("page", 1, "1-based page number")
	listCmd.Flags().Int("size", 0, "rows per page (default: browse.page_size)")
	listCmd.Flags().String("id", "", "show the detail view of one facility")
	listCmd.Flags().String("near", "", "lat,lng: list the nearest facilities instead of a page")
	listCmd.Flags().Int("limit", 10, "facilities listed with --near (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func printStats(w io.Writer, s browse.Stats) {
	parts := make([]string, 0, len(model.AllTypes))
	for _, t := range model.AllTypes {
		parts = append(parts, fmt.Sprintf("%s %d", t.Label(), s.ByType[t]))
	}
	fmt.Fprintf(w, "%d facilities: %s\n", s.Total, strings.Join(parts, ", "))
}

// parseOrigin parses "lat,lng".
func parseOrigin(s string) (*browse.Origin, error) {
	parts := splitAndTrim(s)
	if len(parts) != 2 {
		return nil, eris.Errorf("list: --near %q must be lat,lng", s)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, eris.Wrapf(err, "list: parse latitude %q", parts[0])
	}
	lng, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, eris.Wrapf(err, "list: parse longitude %q", parts[1])
	}
	return &browse.Origin{Lat: lat, Lng: lng}, nil
}

func printDetail(w io.Writer, d browse.DetailView) {
	fmt.Fprintf(w, "%s (%s)\n", d.Title, d.TypeLabel)
	if d.Warning != "" {
		fmt.Fprintln(w, d.Warning)
	}
	fmt.Fprintf(w, "address: %s\n", d.Address)
	if d.DistanceKm != nil {
		fmt.Fprintf(w, "distance: %.1fkm\n", *d.DistanceKm)
	}
	if d.Facility.ServiceTime != "" {
		fmt.Fprintf(w, "service: %s\n", d.Facility.ServiceTime)
	}
	if d.Facility.Pastor != "" {
		fmt.Fprintf(w, "pastor:  %s\n", d.Facility.Pastor)
	}
	for _, a := range d.Actions {
		fmt.Fprintf(w, "%-8s %s\n", a.Kind, a.URL)
	}
}
