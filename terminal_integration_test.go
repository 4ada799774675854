package question

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealTerminalInterface(t *testing.T) {
	if os.Getenv("GITHUB_ACTIONS") == "" {
		t.Skip("Skipping real terminal test in local development")
	}

	// Headless environments have no controlling terminal
	terminal, err := newRealTerminal()
	if err != nil {
		t.Skipf("Cannot create real terminal in this environment: %v", err)
		return
	}
	defer terminal.Close()

	require.NoError(t, terminal.SetRaw())
	require.NoError(t, terminal.Restore())

	width, height, err := terminal.Size()
	if err != nil {
		t.Logf("Size returned error (may be expected in CI): %v", err)
	}
	assert.Positive(t, width)
	assert.Positive(t, height)
	assert.NotNil(t, terminal.Output())

	// Double close must not panic
	assert.NoError(t, terminal.Close())
	assert.NoError(t, terminal.Close())
}

func TestNewReadlineOnRealTerminal(t *testing.T) {
	if os.Getenv("GITHUB_ACTIONS") == "" {
		t.Skip("Skipping real terminal test in local development")
	}

	rl, err := NewReadline()
	if err != nil {
		t.Skipf("Cannot open terminal in this environment: %v", err)
		return
	}
	assert.NoError(t, rl.Close())
	assert.NoError(t, rl.Close())
}
