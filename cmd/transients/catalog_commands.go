package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"transients/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the ingest catalog",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded transients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					if entries == nil {
						entries = []*catalog.Entry{}
					}
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No transients recorded")
					return nil
				}
				rows := make([][]string, len(entries))
				for i, entry := range entries {
					rows[i] = []string{
						entry.Name,
						strconv.Itoa(entry.EpochCount),
						formatFloat(entry.FirstDay),
						formatFloat(entry.LastDay),
						formatOptionalFloat(entry.PeakPhase),
						strconv.Itoa(entry.Mismatches),
						entry.LoadedAt.Local().Format(time.DateTime),
					}
				}
				fmt.Fprintln(out, renderTable("",
					[]string{"Name", "Epochs", "First Day", "Last Day", "Peak", "Mismatches", "Loaded"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a recorded transient and its epochs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				entry, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, entry)
				}
				printCatalogEntry(cmd, entry)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func printCatalogEntry(cmd *cobra.Command, entry *catalog.Entry) {
	out := cmd.OutOrStdout()
	status := newStatusPrinter(out)

	status.header(entry.Name)
	status.status("Data dir", statusInfo, entry.DataDir)
	status.status("Load ID", statusInfo, entry.LoadID)
	status.status("Loaded", statusInfo, entry.LoadedAt.Local().Format(time.DateTime))
	if entry.PeakPhase != nil {
		status.status("Peak ("+orDash(entry.ReferenceBand)+")", statusOK, formatFloat(*entry.PeakPhase))
	}
	if entry.Mismatches > 0 {
		status.status("Wavelength grid", statusWarn, fmt.Sprintf("%d mismatch(es)", entry.Mismatches))
	} else {
		status.status("Wavelength grid", statusOK, "consistent")
	}

	rows := make([][]string, len(entry.Epochs))
	for i, epoch := range entry.Epochs {
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
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a transient from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}
