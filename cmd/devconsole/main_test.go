package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconsole/internal/testutils"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--test-mode"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestExec_CommandLine(t *testing.T) {
	out, err := runCLI(t, "exec", "find", "Ball")
	require.NoError(t, err)

	assert.Contains(t, out, "> find Ball")
	assert.Contains(t, out, "Ball (Sphere) at 0,1,-3, active, 0 components")
}

func TestExec_QuotedArgument(t *testing.T) {
	out, err := runCLI(t, "exec", `find "Second Cube"`)
	require.NoError(t, err)
	assert.Contains(t, out, "Second Cube (Cube) at 2,0,0, active, 1 components")
}

func TestExec_Script(t *testing.T) {
	script := testutils.CreateTempFile(t, "setup.dcs", "# move the first cube\nmove 1,0,0\n\nobjects\n")

	out, err := runCLI(t, "exec", "-f", script)
	require.NoError(t, err)

	assert.Contains(t, out, "Cube (Cube) at 1,0,0, active, 1 components")
	assert.Contains(t, out, "Hidden Capsule (Capsule) at 4,0,4, inactive, 1 components")
	assert.NotContains(t, out, "# move")
}

func TestExec_DeterministicIDs(t *testing.T) {
	testutils.ResetTestCounters()
	t.Cleanup(testutils.ResetTestCounters)

	out, err := runCLI(t, "exec", `object-id "Second Cube"`)
	require.NoError(t, err)
	assert.Contains(t, out, "00000002-0000-4000-8000-000000000002")
}

func TestExec_ConfigFile(t *testing.T) {
	scenePath := testutils.CreateTempFile(t, "crate.yaml", "objects:\n  - name: Crate\n")
	configPath := testutils.CreateTempFile(t, "devconsole.yaml", "plain: true\nscene: "+scenePath+"\n")

	// Config files are skipped in test mode, so this runs without --test-mode.
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", configPath, "exec", "find", "Crate"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Crate (Cube) at 0,0,0, active, 0 components")
}

func TestExec_ScriptFromStdin(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader("time-scale 2\ntime-scale\n"))
	cmd.SetArgs([]string{"--test-mode", "exec", "-f", "-"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "> time-scale\n2\n")
}

func TestExec_Failures(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
		wantOut string
	}{
		{
			name:    "unknown command",
			args:    []string{"exec", "fly"},
			wantErr: "1 of 1 command lines failed",
			wantOut: "Command not found: fly",
		},
		{
			name:    "no matching overload",
			args:    []string{"exec", "move", "1,2"},
			wantErr: "1 of 1 command lines failed",
			wantOut: "Failed to execute command move with arguments 1,2",
		},
		{
			name:    "nothing to execute",
			args:    []string{"exec"},
			wantErr: "nothing to execute",
		},
		{
			name:    "missing script",
			args:    []string{"exec", "-f", "does-not-exist.dcs"},
			wantErr: "failed to open script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.wantOut != "" {
				assert.Contains(t, out, tt.wantOut)
			}
		})
	}
}

func TestExec_SceneFile(t *testing.T) {
	path := testutils.CreateTempFile(t, "scene.yaml", "objects:\n  - name: Crate\n    position: [1, 1, 1]\n")

	out, err := runCLI(t, "--scene", path, "exec", "find", "Crate")
	require.NoError(t, err)
	assert.Contains(t, out, "Crate (Cube) at 1,1,1, active, 0 components")

	_, err = runCLI(t, "--scene", filepath.Join(t.TempDir(), "missing.yaml"), "exec", "objects")
	assert.Error(t, err)
}

func TestComplete(t *testing.T) {
	out, err := runCLI(t, "complete", "spawn x 0,0,0 S")
	require.NoError(t, err)
	assert.Equal(t, "Sphere\n", out)

	out, err = runCLI(t, "complete", "cube-sp")
	require.NoError(t, err)
	assert.Contains(t, out, "cube-speed")

	out, err = runCLI(t, "complete", "--apply", "move ")
	require.NoError(t, err)
	assert.Equal(t, "move 0.0,0.0,0.0\n", out)

	out, err = runCLI(t, "complete", "--cursor", "2", "--apply", "ti 2")
	require.NoError(t, err)
	assert.Equal(t, "time-scale 2\n", out)

	_, err = runCLI(t, "complete", "--apply", "zzz")
	assert.Error(t, err)

	out, err = runCLI(t, "complete", " mo")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "move position"), out)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "devconsole v"))

	out, err = runCLI(t, "version", "--detailed")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Version: ")
	assert.Contains(t, out, "Build Type: development")
}
