package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transients/internal/transient"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var (
		name   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check that all mangled spectra share one wavelength grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.dataDir(args)
			if err != nil {
				return err
			}
			obj, err := ctx.loadObject(cmd, dir, name)
			if err != nil {
				return err
			}

			newStatusPrinter(cmd.OutOrStdout()).grid(obj.Mismatches())
			if strict && !obj.Consistent() {
				return fmt.Errorf("%s: %w (%d mismatches)", obj.Name(), transient.ErrGridMismatch, len(obj.Mismatches()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Transient name (defaults to the directory name)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any mismatch is found")
	return cmd
}
