package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lanabank/scenariogen/internal/scenario"
	"github.com/lanabank/scenariogen/internal/translate"
)

// AnalysisReport is the JSON payload of the analyze command.
type AnalysisReport struct {
	Scenario    string           `json:"scenario"`
	Description string           `json:"description,omitempty"`
	Module      string           `json:"module"`
	StartTime   string           `json:"start_time"`
	Events      int              `json:"events"`
	Actions     []AnalysisAction `json:"actions"`
	Customers   int              `json:"customers"`
	Facilities  int              `json:"facilities"`
}

// AnalysisAction is one planned action in the report.
type AnalysisAction struct {
	Type     string `json:"type"`
	Entity   string `json:"entity"`
	WaitDays int    `json:"wait_days,omitempty"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <scenario-file>",
		Short: "Show the sim-bootstrap action plan for a scenario",
		Long: `Translate a scenario and print the resulting action plan without
generating any code.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runAnalyze(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	actions, tracker := translate.Translate(s)

	report := AnalysisReport{
		Scenario:    s.Name,
		Description: s.Description,
		Module:      s.ModuleName(),
		StartTime:   s.StartTime.UTC().Format(time.RFC3339),
		Events:      len(s.Events),
		Customers:   tracker.Customers(),
		Facilities:  tracker.Facilities(),
	}
	for _, a := range actions {
		report.Actions = append(report.Actions, AnalysisAction{
			Type:     string(a.Type),
			Entity:   a.Entity,
			WaitDays: a.WaitDays,
		})
	}

	if opts.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "Scenario: %s\n", report.Scenario)
	if report.Description != "" {
		fmt.Fprintf(formatter.Writer, "Description: %s\n", report.Description)
	}
	fmt.Fprintf(formatter.Writer, "Start: %s\n", report.StartTime)
	fmt.Fprintf(formatter.Writer, "Events: %d\n", report.Events)
	fmt.Fprintf(formatter.Writer, "\nActions (%d):\n", len(report.Actions))
	for i, a := range report.Actions {
		waitInfo := ""
		if a.WaitDays > 0 {
			waitInfo = fmt.Sprintf(" (wait %dd)", a.WaitDays)
		}
		fmt.Fprintf(formatter.Writer, "  %2d. %s: %s%s\n", i+1, a.Type, a.Entity, waitInfo)
	}
	return nil
}
