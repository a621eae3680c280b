package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_PrintsVersionInfo(t *testing.T) {
	buffer := &bytes.Buffer{}

	cmd := newVersionCmd()
	cmd.SetOut(buffer)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, buffer.String(), "elmscope version")
}
