package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"transients/internal/transient"
)

type epochView struct {
	Index       int     `json:"index"`
	Day         float64 `json:"day"`
	MangledFile string  `json:"mangled_file,omitempty"`
	DataFile    string  `json:"data_file,omitempty"`
	Samples     int     `json:"samples"`
}

type inspectReport struct {
	Name       string               `json:"name"`
	DataDir    string               `json:"data_dir"`
	Epochs     []epochView          `json:"epochs"`
	Consistent bool                 `json:"consistent"`
	Mismatches []transient.Mismatch `json:"mismatches,omitempty"`
	LoadID     string               `json:"load_id,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var (
		name    string
		verbose bool
		asJSON  bool
		record  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [dir]",
		Short: "Load a transient's spectra and summarise its epochs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.dataDir(args)
			if err != nil {
				return err
			}
			obj, err := ctx.loadObject(cmd, dir, name, transient.WithVerbose(verbose))
			if err != nil {
				return err
			}

			report := buildInspectReport(obj, dir)
			if record {
				loadID, err := ctx.record(cmd, obj, dir)
				if err != nil {
					return err
				}
				report.LoadID = loadID
			}

			if asJSON {
				return writeJSON(cmd, report)
			}
			printInspectReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Transient name (defaults to the directory name)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every matching wavelength grid")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&record, "record", false, "Record the load in the catalog")
	return cmd
}

func buildInspectReport(obj *transient.Object, dir string) inspectReport {
	days := obj.Days()
	mangled := obj.Mangled()
	mangledFiles := obj.MangledFiles()
	dataFiles := obj.DataFiles()

	report := inspectReport{
		Name:       obj.Name(),
		DataDir:    dir,
		Epochs:     make([]epochView, len(days)),
		Consistent: obj.Consistent(),
		Mismatches: obj.Mismatches(),
	}
	for i, day := range days {
		view := epochView{Index: i, Day: day, Samples: mangled[i].Rows()}
		if i < len(mangledFiles) {
			view.MangledFile = filepath.Base(mangledFiles[i])
		}
		if i < len(dataFiles) {
			view.DataFile = filepath.Base(dataFiles[i])
		}
		report.Epochs[i] = view
	}
	return report
}

func printInspectReport(cmd *cobra.Command, report inspectReport) {
	out := cmd.OutOrStdout()
	status := newStatusPrinter(out)

	status.header(report.Name)
	rows := make([][]string, len(report.Epochs))
	for i, epoch := range report.Epochs {
		rows[i] = []string{
			strconv.Itoa(epoch.Index),
			formatFloat(epoch.Day),
			orDash(epoch.MangledFile),
			orDash(epoch.DataFile),
			strconv.Itoa(epoch.Samples),
		}
	}
	fmt.Fprintln(out, renderTable("",
		[]string{"#", "Day", "Mangled", "Raw", "Samples"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight},
	))
	status.grid(report.Mismatches)
	if report.LoadID != "" {
		status.status("Catalog", statusInfo, "recorded as "+report.LoadID)
	}
}
