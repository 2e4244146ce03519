package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingular(t *testing.T) {
	assert.Equal(t, "workspace", singular("workspaces"))
	assert.Equal(t, "insight", singular("insights"))
	assert.Equal(t, "", singular(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a very ...", truncate("a very long title indeed", 10))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	// Format validation happens before any session is resolved, so no
	// credentials are needed here.
	err := exportCmd.RunE(exportCmd, []string{"docx", "viz1"})
	assert.ErrorContains(t, err, "unknown export format")
}

func TestExportTakesFormatPositionally(t *testing.T) {
	assert.NoError(t, exportCmd.Args(exportCmd, []string{"csv", "viz1"}))
	assert.Error(t, exportCmd.Args(exportCmd, []string{"viz1"}))
}

func TestRootRegistersAllCommands(t *testing.T) {
	want := map[string]bool{
		"list": false, "dashboard": false, "insight": false, "ldm": false,
		"users": false, "groups": false, "chat": false, "export": false, "serve": false, "upgrade": false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "command %q not registered", name)
	}
}
