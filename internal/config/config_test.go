package config

import (
	"os"
	"path/filepath"
	"testing"

	"calc/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	config, err := Load("non-existent-file.yaml")
	require.NoError(t, err)
	assert.Equal(t, ">>> ", config.Prompt)
	assert.True(t, config.ColorEnabled())
	assert.False(t, config.TUI)
	assert.Equal(t, parser.DefaultOptions(), config.ParserOptions())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "calc.yaml", `
prompt: "calc> "
color: false
tui: true
recovery:
  max_cost: 2
  lookahead: 4
log:
  verbosity: 2
  file: calc.log
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "calc> ", config.Prompt)
	assert.False(t, config.ColorEnabled())
	assert.True(t, config.TUI)
	assert.Equal(t, parser.Options{MaxRepairCost: 2, RecoveryLookahead: 4}, config.ParserOptions())
	assert.Equal(t, 2, config.Log.Verbosity)
	assert.Equal(t, "calc.log", config.Log.File)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "calc.yaml", "recovery:\n  max_cost: 1\n")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, config.Recovery.MaxCost)
	assert.Equal(t, 3, config.Recovery.Lookahead)
	assert.Equal(t, ">>> ", config.Prompt)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "calc.yaml", "promt: oops\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero max cost", "recovery:\n  max_cost: 0\n"},
		{"max cost above limit", "recovery:\n  max_cost: 7\n"},
		{"negative lookahead", "recovery:\n  lookahead: -2\n"},
		{"bad verbosity", "log:\n  verbosity: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			path := writeFile(t, dir, "calc.yaml", tt.content)

			_, err := Load(path)
			assert.ErrorIs(t, err, ErrConfigValidation)
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "calc.yaml", "prompt: \"file> \"\n")

	t.Setenv("CALC_PROMPT", "env> ")
	t.Setenv("CALC_MAX_REPAIR_COST", "5")
	t.Setenv("CALC_TUI", "true")
	t.Setenv("CALC_COLOR", "false")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env> ", config.Prompt)
	assert.Equal(t, 5, config.Recovery.MaxCost)
	assert.True(t, config.TUI)
	assert.False(t, config.ColorEnabled())
}

func TestLoad_EnvironmentMaxCostAboveLimit(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CALC_MAX_REPAIR_COST", "14")

	_, err := Load(DefaultPath)
	require.ErrorIs(t, err, ErrConfigValidation)
	assert.Contains(t, err.Error(), "at most 6")
}

func TestLoad_BadEnvironmentValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CALC_LOOKAHEAD", "lots")

	_, err := Load(DefaultPath)
	assert.ErrorIs(t, err, ErrConfigValidation)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "CALC_LOG_FILE=from-dotenv.log\n")
	t.Cleanup(func() { os.Unsetenv("CALC_LOG_FILE") })

	config, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.log", config.Log.File)
}

func TestLoad_NoColorConvention(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NO_COLOR", "1")

	config, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.False(t, config.ColorEnabled())
}
