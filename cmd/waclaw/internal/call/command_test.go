package call

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallCommand(t *testing.T) {
	cmd := NewCallCommand()

	require.NotNil(t, cmd)
	assert.Equal(t, "call", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	end, _, err := cmd.Find([]string{"end"})
	require.NoError(t, err)
	require.NotNil(t, end)

	assert.Equal(t, "end [call-id]", end.Use)
	assert.NotNil(t, end.RunE)
	assert.NotNil(t, end.Flags().Lookup("peer"))
	assert.NotNil(t, end.Flags().Lookup("state"))
	assert.NotNil(t, end.Flags().Lookup("group"))
}
