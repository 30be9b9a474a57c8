package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanabank/scenariogen/internal/gen"
	"github.com/lanabank/scenariogen/internal/scenario"
	"github.com/lanabank/scenariogen/internal/translate"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Output string // output .rs file path
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <scenario-file>",
		Short: "Convert a single YAML scenario to Rust code",
		Long: `Convert one scenario file to sim-bootstrap Rust code.

Without --output the generated source is written to stdout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output .rs file path")

	return cmd
}

func runConvert(opts *ConvertOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := scenario.ParseFile(path)
	if err != nil {
		loadErr := convertParseError(err, path)
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		return WrapExitError(ExitCommandError, loadErr.Error(), err)
	}

	formatter.VerboseLog("Parsed %s: %d event(s)", path, len(s.Events))

	actions, tracker := translate.Translate(s)
	formatter.VerboseLog("Translated %d event(s) into %d action(s)", len(s.Events), len(actions))

	g, err := gen.New()
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "initializing generator", err)
	}

	code, err := g.Scenario(s, actions, tracker)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "generating code", err)
	}

	if opts.Output == "" {
		_, err = cmd.OutOrStdout().Write(code)
		return err
	}

	if err := os.WriteFile(opts.Output, code, 0644); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		return WrapExitError(ExitCommandError, "writing output file", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"scenario": s.Name,
			"module":   s.ModuleName(),
			"actions":  len(actions),
			"output":   opts.Output,
		})
	}
	fmt.Fprintf(formatter.Writer, "Generated: %s\n", opts.Output)
	return nil
}
