package main

import (
	"github.com/spf13/cobra"

	"transients/internal/transient"
)

func newPeakCommand(ctx *commandContext) *cobra.Command {
	var (
		name   string
		band   string
		record bool
	)

	cmd := &cobra.Command{
		Use:   "peak [dir]",
		Short: "Derive the time-series source and report its peak phase",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.dataDir(args)
			if err != nil {
				return err
			}
			obj, err := ctx.loadObject(cmd, dir, name, transient.WithReferenceBand(band))
			if err != nil {
				return err
			}
			if _, err := obj.Source(); err != nil {
				return err
			}
			peak, _ := obj.PhasePeak()

			status := newStatusPrinter(cmd.OutOrStdout())
			status.status("Peak ("+obj.ReferenceBand()+")", statusOK, formatFloat(peak))
			if record {
				loadID, err := ctx.record(cmd, obj, dir)
				if err != nil {
					return err
				}
				status.status("Catalog", statusInfo, "recorded as "+loadID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Transient name (defaults to the directory name)")
	cmd.Flags().StringVarP(&band, "band", "b", "", "Reference bandpass (default source.reference_band)")
	cmd.Flags().BoolVar(&record, "record", false, "Record the load and peak in the catalog")
	return cmd
}
