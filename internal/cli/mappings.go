package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lanabank/scenariogen/internal/translate"
)

// NewListMappingsCommand creates the list-mappings command, which exposes
// the fixed event-to-action dispatch table for documentation tooling.
func NewListMappingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-mappings",
		Short: "List all event-to-action mappings",
		Long: `List every known domain event type grouped by the sim-bootstrap
action it translates to. "skip" events produce no action; "multi:" events
expand into a fixed action sequence.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListMappings(rootOpts, cmd)
		},
	}
	return cmd
}

func runListMappings(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	grouped := translate.Mappings()

	if opts.Format == "json" {
		return formatter.Success(grouped)
	}

	labels := make([]string, 0, len(grouped))
	for label := range grouped {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Fprintln(formatter.Writer, "Event -> Action Mappings:")
	fmt.Fprintln(formatter.Writer)
	for _, label := range labels {
		fmt.Fprintf(formatter.Writer, "%s:\n", label)
		for _, event := range grouped[label] {
			fmt.Fprintf(formatter.Writer, "  - %s\n", event)
		}
		fmt.Fprintln(formatter.Writer)
	}
	return nil
}
