package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transients/internal/photometry"
	"transients/internal/transient"
)

func newPhotometryCommand(ctx *commandContext) *cobra.Command {
	var (
		name    string
		filters string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "photometry [dir]",
		Short: "Assemble per-band light curves into one table",
		Long: "Reads <dir>/<band>/*.DAT for every requested band and stacks the rows.\n" +
			"Spectra in <dir> are loaded first so the transient is checked as a whole.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir, err := ctx.dataDir(args)
			if err != nil {
				return err
			}
			bands := splitList(filters)
			if len(bands) == 0 {
				bands = cfg.Photometry.DefaultBands
			}

			obj, err := ctx.loadObject(cmd, dir, name)
			if err != nil {
				return err
			}
			phot, err := obj.Photometry(dir, bands)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, phot)
			}
			printPhotometry(cmd, obj, phot)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Transient name (defaults to the directory name)")
	cmd.Flags().StringVarP(&filters, "filters", "f", "", "Comma separated bands (default photometry.default_bands)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func printPhotometry(cmd *cobra.Command, obj *transient.Object, phot *photometry.Table) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, phot.Len())
	for _, row := range phot.Rows {
		rows = append(rows, []string{
			formatFloat(row.Time),
			formatFloat(row.Flux),
			formatFloat(row.FluxErr),
			row.Band,
		})
	}
	fmt.Fprintln(out, renderTable(obj.Name(),
		[]string{"Time", "Flux", "Flux Err", "Filter"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
	))
	status := newStatusPrinter(out)
	for _, band := range phot.Bands() {
		status.status(band, statusInfo, fmt.Sprintf("%d rows", phot.FilterBand(band).Len()))
	}
}
