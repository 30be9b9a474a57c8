package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMappingsText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewListMappingsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Event -> Action Mappings:")
	assert.Contains(t, out, "create_customer:")
	assert.Contains(t, out, "  - CustomerEvent::Initialized")
	assert.Contains(t, out, "multi:create_facility:")
	assert.Contains(t, out, "skip:")
}

func TestListMappingsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewListMappingsCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string              `json:"status"`
		Data   map[string][]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, resp.Data["make_deposit"], "DepositEvent::Initialized")
	assert.Equal(t, []string{"CreditFacilityEvent::Initialized"}, resp.Data["multi:create_facility"])
}
