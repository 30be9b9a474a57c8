package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lanabank/scenariogen/internal/gen"
	"github.com/lanabank/scenariogen/internal/scenario"
	"github.com/lanabank/scenariogen/internal/translate"
)

// ConvertAllOptions holds flags for the convert-all command.
type ConvertAllOptions struct {
	*RootOptions
	Clean bool // wipe the output directory first
}

// BatchReport summarizes one convert-all run.
type BatchReport struct {
	RunID     string       `json:"run_id"`
	Converted []BatchEntry `json:"converted"`
	Failed    []BatchError `json:"failed,omitempty"`
	OutputDir string       `json:"output_dir"`
}

// BatchEntry records one successfully converted scenario.
type BatchEntry struct {
	Source  string `json:"source"`
	Module  string `json:"module"`
	Actions int    `json:"actions"`
}

// BatchError records one scenario that failed to convert.
type BatchError struct {
	Source  string `json:"source"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewConvertAllCommand creates the convert-all command.
func NewConvertAllCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertAllOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert-all <scenarios-dir> <output-dir>",
		Short: "Convert all YAML scenarios in a directory to Rust code",
		Long: `Convert every scenario file under a directory to sim-bootstrap Rust
code, one <module_name>.rs per scenario plus a mod.rs manifest.

A malformed scenario fails that file only; the remaining scenarios are
still converted and the failure is reported per file.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvertAll(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Clean, "clean", false, "clean output directory first")

	return cmd
}

func runConvertAll(opts *ConvertAllOptions, scenariosDir, outputDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loaded, loadErrs := LoadScenarios(scenariosDir)

	// Directory-level failures (no path attached) abort before any
	// output is written; per-file failures are reported and survived.
	if loaded == nil && len(loadErrs) > 0 && loadErrorPath(loadErrs[0]) == "" {
		code, message := loadErrorParts(loadErrs[0])
		_ = formatter.Error(code, message, nil)
		return WrapExitError(ExitCommandError, message, loadErrs[0])
	}

	if opts.Clean {
		if err := os.RemoveAll(outputDir); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("cleaning output directory: %v", err), nil)
			return WrapExitError(ExitCommandError, "cleaning output directory", err)
		}
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("creating output directory: %v", err), nil)
		return WrapExitError(ExitCommandError, "creating output directory", err)
	}

	g, err := gen.New()
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "initializing generator", err)
	}

	report := BatchReport{
		RunID:     uuid.Must(uuid.NewV7()).String(),
		OutputDir: outputDir,
	}
	for _, e := range loadErrs {
		code, message := loadErrorParts(e)
		report.Failed = append(report.Failed, BatchError{Code: code, Message: message, Source: loadErrorPath(e)})
	}

	var generated []*scenario.Scenario
	for _, ls := range loaded {
		actions, tracker := translate.Translate(ls.Scenario)
		code, err := g.Scenario(ls.Scenario, actions, tracker)
		if err != nil {
			report.Failed = append(report.Failed, BatchError{
				Source: ls.Path, Code: ErrCodeGeneric, Message: err.Error(),
			})
			continue
		}

		outPath := filepath.Join(outputDir, ls.Scenario.ModuleName()+".rs")
		if err := os.WriteFile(outPath, code, 0644); err != nil {
			report.Failed = append(report.Failed, BatchError{
				Source: ls.Path, Code: ErrCodeWriteFailed, Message: err.Error(),
			})
			continue
		}

		formatter.VerboseLog("  %s -> %s", filepath.Base(ls.Path), filepath.Base(outPath))
		generated = append(generated, ls.Scenario)
		report.Converted = append(report.Converted, BatchEntry{
			Source:  ls.Path,
			Module:  ls.Scenario.ModuleName(),
			Actions: len(actions),
		})
	}

	if len(generated) > 0 {
		modCode, err := g.ModFile(generated)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "generating mod.rs", err)
		}
		if err := os.WriteFile(filepath.Join(outputDir, "mod.rs"), modCode, 0644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing mod.rs: %v", err), nil)
			return WrapExitError(ExitCommandError, "writing mod.rs", err)
		}
	}

	return outputBatchReport(formatter, report)
}

// outputBatchReport renders the run summary and decides the exit status:
// any per-file failure exits 1 even though the rest of the batch was
// written.
func outputBatchReport(formatter *OutputFormatter, report BatchReport) error {
	if formatter.Format == "json" {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		for _, entry := range report.Converted {
			fmt.Fprintf(formatter.Writer, "  ok %s -> %s.rs (%d actions)\n", entry.Source, entry.Module, entry.Actions)
		}
		for _, fail := range report.Failed {
			fmt.Fprintf(formatter.Writer, "  FAIL %s: [%s] %s\n", fail.Source, fail.Code, fail.Message)
		}
		fmt.Fprintf(formatter.Writer, "\nGenerated %d scenario module(s) in %s\n", len(report.Converted), report.OutputDir)
	}

	if len(report.Failed) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed to convert", len(report.Failed)))
	}
	return nil
}

// loadErrorParts extracts code and message from a load error.
func loadErrorParts(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return ErrCodeGeneric, err.Error()
}

// loadErrorPath extracts the offending file path, when known.
func loadErrorPath(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Path
	}
	return ""
}
