package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secondScenarioYAML = `
name: Interest Accrual
seed: 2
events:
  - event: CustomerEvent::Initialized
    entity: customer_1
  - event: CreditFacilityEvent::Initialized
    entity: facility_1
    after: 1d
  - event: CreditFacilityEvent::InterestAccrualCycleStarted
    entity: facility_1
    after: 30d
`

func TestConvertAllWritesModules(t *testing.T) {
	scenariosDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "generated")
	writeScenario(t, scenariosDir, "quick_loan.yml", validScenarioYAML)
	writeScenario(t, scenariosDir, "interest.yaml", secondScenarioYAML)

	buf := &bytes.Buffer{}
	cmd := NewConvertAllCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scenariosDir, outputDir})

	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(outputDir, "quick_loan.rs"))
	assert.FileExists(t, filepath.Join(outputDir, "interest_accrual.rs"))

	modCode, err := os.ReadFile(filepath.Join(outputDir, "mod.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(modCode), "pub mod interest_accrual;")
	assert.Contains(t, string(modCode), "pub mod quick_loan;")
	assert.Contains(t, string(modCode), "pub async fn run_all(")

	assert.Contains(t, buf.String(), "Generated 2 scenario module(s)")
}

func TestConvertAllIsolatesFailures(t *testing.T) {
	scenariosDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "generated")
	writeScenario(t, scenariosDir, "good.yml", validScenarioYAML)
	writeScenario(t, scenariosDir, "broken.yml", "events:\n  - entity: no_event_type\n")

	buf := &bytes.Buffer{}
	cmd := NewConvertAllCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scenariosDir, outputDir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// The good scenario still converted.
	assert.FileExists(t, filepath.Join(outputDir, "quick_loan.rs"))
	assert.FileExists(t, filepath.Join(outputDir, "mod.rs"))
	assert.Contains(t, buf.String(), "FAIL")
	assert.Contains(t, buf.String(), "broken.yml")
}

func TestConvertAllMissingDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewConvertAllCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing"), t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvertAllClean(t *testing.T) {
	scenariosDir := t.TempDir()
	outputDir := t.TempDir()
	writeScenario(t, scenariosDir, "quick_loan.yml", validScenarioYAML)

	stale := filepath.Join(outputDir, "stale.rs")
	require.NoError(t, os.WriteFile(stale, []byte("// old"), 0644))

	buf := &bytes.Buffer{}
	cmd := NewConvertAllCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scenariosDir, outputDir, "--clean"})

	require.NoError(t, cmd.Execute())
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(outputDir, "quick_loan.rs"))
}

func TestConvertAllJSONReport(t *testing.T) {
	scenariosDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "generated")
	writeScenario(t, scenariosDir, "quick_loan.yml", validScenarioYAML)

	buf := &bytes.Buffer{}
	cmd := NewConvertAllCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scenariosDir, outputDir})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string      `json:"status"`
		Data   BatchReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	require.Len(t, resp.Data.Converted, 1)
	assert.Equal(t, "quick_loan", resp.Data.Converted[0].Module)
	assert.Equal(t, 7, resp.Data.Converted[0].Actions)

	runID, err := uuid.Parse(resp.Data.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), runID.Version())
}
