package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeText(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "quick_loan.yml", validScenarioYAML)

	buf := &bytes.Buffer{}
	cmd := NewAnalyzeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Scenario: Quick Loan")
	assert.Contains(t, out, "Events: 3")
	assert.Contains(t, out, "Actions (7):")
	assert.Contains(t, out, "create_customer: customer_1")
	assert.Contains(t, out, "make_deposit: deposit_1 (wait 1d)")
	assert.Contains(t, out, "create_proposal: facility_1 (wait 2d)")
	assert.Contains(t, out, "wait_for_facility_activation: facility_1")
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "quick_loan.yml", validScenarioYAML)

	buf := &bytes.Buffer{}
	cmd := NewAnalyzeCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string         `json:"status"`
		Data   AnalysisReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Quick Loan", resp.Data.Scenario)
	assert.Equal(t, "quick_loan", resp.Data.Module)
	assert.Equal(t, 3, resp.Data.Events)
	assert.Equal(t, 1, resp.Data.Customers)
	assert.Equal(t, 1, resp.Data.Facilities)
	require.Len(t, resp.Data.Actions, 7)
	assert.Equal(t, "create_customer", resp.Data.Actions[0].Type)
	assert.Equal(t, 2, resp.Data.Actions[2].WaitDays)
}

func TestAnalyzeMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewAnalyzeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"does-not-exist.yml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
