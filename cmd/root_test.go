package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webdam/internal/cli"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic error", errors.New("boom"), ExitCodeError},
		{"auth required", &cli.AuthRequiredError{Endpoint: "https://x"}, ExitCodeAuthRequired},
		{"auth expired", &cli.AuthExpiredError{Endpoint: "https://x"}, ExitCodeAuthRequired},
		{"auth failed", &cli.AuthFailedError{Endpoint: "https://x", Reason: errors.New("denied")}, ExitCodeAuthFailed},
		{"wrapped auth required", fmt.Errorf("context: %w", &cli.AuthRequiredError{}), ExitCodeAuthRequired},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, getExitCode(test.err))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")

	var buf bytes.Buffer
	versionCmd := newVersionCmd()
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, "webdam version 1.2.3\n", buf.String())
	assert.Equal(t, "1.2.3", GetVersion())
}

func TestRootCommandStructure(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, expected := range []string{"auth", "ls", "tree", "search", "asset", "account", "version"} {
		assert.True(t, names[expected], "missing subcommand %s", expected)
	}
	assert.True(t, rootCmd.SilenceUsage)
}

func TestListFlagsQuery(t *testing.T) {
	flags := listFlags{page: 2, sortBy: "filename", sortDir: "desc", types: "image"}

	query, err := flags.query(12)
	require.NoError(t, err)
	assert.Equal(t, 24, query.Offset)
	assert.Equal(t, 12, query.Limit)
	assert.Equal(t, "filename", query.SortField)
	assert.Equal(t, "desc", query.SortDir)
	assert.Equal(t, "image", query.TypeFilter)
}

func TestListFlagsQuery_Invalid(t *testing.T) {
	_, err := listFlags{sortBy: "color", sortDir: "asc"}.query(12)
	assert.Error(t, err)

	_, err = listFlags{sortBy: "filename", sortDir: "sideways"}.query(12)
	assert.Error(t, err)

	_, err = listFlags{sortBy: "filename", sortDir: "asc", types: "hologram"}.query(12)
	assert.Error(t, err)

	_, err = listFlags{page: -1, sortBy: "filename", sortDir: "asc"}.query(12)
	assert.Error(t, err)
}

func TestListFlagsQuery_PageSizeFallback(t *testing.T) {
	query, err := listFlags{page: 1, sortBy: "datecreated", sortDir: "asc", pageSize: 50}.query(12)
	require.NoError(t, err)
	assert.Equal(t, 50, query.Limit)
	assert.Equal(t, 50, query.Offset)

	query, err = listFlags{page: 1, sortBy: "datecreated", sortDir: "asc"}.query(24)
	require.NoError(t, err)
	assert.Equal(t, 24, query.Limit)
	assert.Equal(t, 24, query.Offset)
}
