package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/faithmap/faithmap/internal/export"
	"github.com/faithmap/faithmap/internal/model"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered snapshot as CSV or XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatStr, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" && format == export.XLSX {
			return eris.New("export: --out is required for xlsx")
		}

		idx, err := loadIndex(cmd.Context())
		if err != nil {
			return err
		}
		list := idx.Filter(filterFromFlags(cmd))

		if outPath == "" {
			return export.Write(cmd.OutOrStdout(), format, list)
		}
		if err := writeExportFile(outPath, format, list); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d facilities written to %s\n", len(list), outPath)
		return nil
	},
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().String("format", "csv", "csv or xlsx")
	exportCmd.Flags().String("out", "", "output file (default: stdout, csv only)")
	rootCmd.AddCommand(exportCmd)
}

// writeExportFile writes list to path. A failed close is reported since the
// file may be truncated.
func writeExportFile(path string, format export.Format, list []model.Facility) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = eris.Wrapf(cerr, "export: close %s", path)
		}
	}()
	return export.Write(f, format, list)
}
