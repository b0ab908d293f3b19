package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"miren.dev/fixme/internal/report"
	"miren.dev/fixme/internal/source"
)

func newScanCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan <file>...",
		Short: "Print the FIXME and TODO comments found in files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(report.Formats, format) {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(report.Formats, ", "))
			}

			renderer, err := report.NewRenderer()
			if err != nil {
				return fmt.Errorf("initialize renderer: %w", err)
			}

			lists, errs := source.ExtractFiles(args)
			if err := renderer.Render(cmd.OutOrStdout(), format, lists); err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			return unreadable(errs)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "output format: "+strings.Join(report.Formats, ", "))
	return cmd
}

func unreadable(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return fmt.Errorf("%d files could not be read, first: %w", len(errs), errs[0])
	}
}
