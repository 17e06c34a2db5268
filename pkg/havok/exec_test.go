// pkg/havok/exec_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: /bin/sh, real filesystem
// PURPOSE: Test the process adapter against a shell-script stand-in for the tool

package havok_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/havok"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeToolScript echoes its inputs into the output file the way the real
// tool's modes consume and produce them.
const fakeToolScript = `#!/bin/sh
case "$1" in
  1) { printf 'xml:'; cat "$2"; } > "$3" ;;
  2) { printf 'bin:'; cat "$2"; } > "$3" ;;
  3) { cat "$2"; printf ':%s:' "$4"; cat "$3"; } > "$5" ;;
esac
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script tool stand-in needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "animassist.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}

func TestExecTool_Modes(t *testing.T) {
	workDir := t.TempDir()
	tool := havok.NewExecTool(havok.ExecOptions{Path: writeScript(t, fakeToolScript), WorkDir: workDir})
	ctx := context.Background()

	out, err := tool.TagSkeleton(ctx, []byte("skel"))
	require.NoError(t, err)
	assert.Equal(t, "xml:skel", string(out))

	out, err = tool.PackAnimation(ctx, []byte("<anim/>"))
	require.NoError(t, err)
	assert.Equal(t, "bin:<anim/>", string(out))

	out, err = tool.Combine(ctx, []byte("S"), []byte("A"), 3)
	require.NoError(t, err)
	assert.Equal(t, "S:3:A", string(out))

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "exchange directories are removed")
}

func TestExecTool_KeepLeavesExchangeDirectory(t *testing.T) {
	workDir := t.TempDir()
	tool := havok.NewExecTool(havok.ExecOptions{Path: writeScript(t, fakeToolScript), WorkDir: workDir, Keep: true})

	_, err := tool.TagSkeleton(context.Background(), []byte("skel"))
	require.NoError(t, err)

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExecTool_Launcher(t *testing.T) {
	script := writeScript(t, fakeToolScript)
	require.NoError(t, os.Chmod(script, 0644))
	tool := havok.NewExecTool(havok.ExecOptions{Path: script, Launcher: "/bin/sh", WorkDir: t.TempDir()})

	out, err := tool.TagSkeleton(context.Background(), []byte("skel"))
	require.NoError(t, err)
	assert.Equal(t, "xml:skel", string(out))
}

func TestExecTool_NoOutputIsToolFailure(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"exits without output", "#!/bin/sh\necho 'An error occurred while saving the XML...'\nexit 1\n"},
		{"exits cleanly without output", "#!/bin/sh\nexit 0\n"},
		{"writes an empty file", "#!/bin/sh\n: > \"$3\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := havok.NewExecTool(havok.ExecOptions{Path: writeScript(t, tt.script), WorkDir: t.TempDir()})

			out, err := tool.TagSkeleton(context.Background(), []byte("skel"))
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.IsErrorCode(err, errors.ErrExternalTool), "got %v", err)
			assert.Equal(t, "tag-skeleton", errors.GetErrorDetails(err)["mode"])
		})
	}
}

func TestExecTool_NonZeroExitWithOutputIsAccepted(t *testing.T) {
	script := "#!/bin/sh\nprintf done > \"$3\"\nexit 3\n"
	tool := havok.NewExecTool(havok.ExecOptions{Path: writeScript(t, script), WorkDir: t.TempDir()})

	out, err := tool.PackAnimation(context.Background(), []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "done", string(out))
}

func TestExecTool_MissingExecutable(t *testing.T) {
	tool := havok.NewExecTool(havok.ExecOptions{Path: filepath.Join(t.TempDir(), "animassist.exe")})

	_, err := tool.Combine(context.Background(), nil, nil, 0)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExternalTool))
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "tag-skeleton", havok.ModeTagSkeleton.String())
	assert.Equal(t, "pack-animation", havok.ModePackAnimation.String())
	assert.Equal(t, "combine", havok.ModeCombine.String())
	assert.Equal(t, "unknown", havok.Mode(9).String())
}
