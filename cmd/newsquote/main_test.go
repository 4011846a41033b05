package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/newsquote"
	main "github.com/fwojciec/newsquote/cmd/newsquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return context.Background()
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := main.NewMain()
			defer m.Close()

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), tt.args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage: newsquote")
			assert.Contains(t, stdout.String(), "Commands:")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	defer m.Close()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: newsquote")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	defer m.Close()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"bogus"}, stdout, stderr)

	assert.Error(t, err)
}

func TestRun_ExtractRequiresDiffbotToken(t *testing.T) {
	t.Setenv("DIFFBOT_TOKEN", "")

	m := main.NewMain()
	defer m.Close()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"extract", "input.csv"}, stdout, stderr)

	require.Error(t, err)
	assert.Equal(t, newsquote.EINVALID, newsquote.ErrorCode(err))
	assert.Contains(t, stderr.String(), "DIFFBOT_TOKEN")
}

func TestRun_ParseRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	m := main.NewMain()
	defer m.Close()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"parse", "extractions.csv"}, stdout, stderr)

	require.Error(t, err)
	assert.Equal(t, newsquote.EINVALID, newsquote.ErrorCode(err))
	assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
}

func TestRun_HelpWithoutCreatingDB(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "should-not-exist.db")

	m := main.NewMain()
	defer m.Close()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"--help", "--db", dbPath}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Usage: newsquote")

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "database file should not be created for --help")
}
