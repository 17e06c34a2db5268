// pkg/commands/extract/extract_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS, FakeTool
// PURPOSE: Test the extract workflow from containers to the combined file

package extract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmcintyre/AnimAssist/pkg/commands/extract"
	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/filesystem"
	"github.com/lmcintyre/AnimAssist/pkg/testutil"
)

var (
	skelPayload = testutil.Payload(10, 0x30)
	animPayload = testutil.Payload(14, 0x10)
)

func setup(t *testing.T, anims []testutil.Animation, papSkeleton uint32) filesystem.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/work", 0755))
	require.NoError(t, fsys.WriteFile("/work/skl.sklb", testutil.SkeletonV2(44, 44, 0, 101, [4]uint32{}, skelPayload), 0644))
	require.NoError(t, fsys.WriteFile("/work/anim.pap", testutil.Pap(papSkeleton, anims, animPayload, testutil.Payload(6, 0xa0)), 0644))
	return fsys
}

func options(fsys filesystem.FS, tool *testutil.FakeTool) extract.ExtractOptions {
	return extract.ExtractOptions{
		FS:            fsys,
		Tool:          tool,
		SkeletonPath:  "/work/skl.sklb",
		AnimationPath: "/work/anim.pap",
		OutputPath:    "/work/out.hkx",
		Selection:     extract.NoSelection,
	}
}

func TestExtract_SingleAnimation(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle", HavokIndex: 7}}, 101)
	tool := &testutil.FakeTool{}

	result, err := extract.Extract(context.Background(), options(fsys, tool))
	require.NoError(t, err)

	calls := tool.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "combine", calls[0].Mode)
	assert.Equal(t, skelPayload, calls[0].Inputs[0])
	assert.Equal(t, animPayload, calls[0].Inputs[1])
	assert.Equal(t, uint16(0), calls[0].HavokIndex, "single animations always combine index 0")

	out, err := fsys.ReadFile("/work/out.hkx")
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte(nil), skelPayload...), animPayload...), out)

	assert.True(t, result.Written)
	assert.Equal(t, len(out), result.OutputBytes)
	assert.Empty(t, result.Warnings)
}

func TestExtract_MultipleAnimationsNeedSelection(t *testing.T) {
	anims := []testutil.Animation{{Name: "a", HavokIndex: 0}, {Name: "b", HavokIndex: 1}, {Name: "c", HavokIndex: 2}}
	fsys := setup(t, anims, 101)
	tool := &testutil.FakeTool{}

	_, err := extract.Extract(context.Background(), options(fsys, tool))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSelection))
	assert.Empty(t, tool.Calls())

	opts := options(fsys, tool)
	opts.Selection = 1
	result, err := extract.Extract(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), result.HavokIndex)
	assert.Equal(t, uint16(1), tool.Calls()[0].HavokIndex)
	assert.Len(t, result.Candidates, 3)
	assert.NotEmpty(t, result.Warnings)

	opts.Selection = 5
	_, err = extract.Extract(context.Background(), opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSelection))
}

func TestExtract_SkeletonMismatchIsWarning(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle"}}, 201)

	result, err := extract.Extract(context.Background(), options(fsys, &testutil.FakeTool{}))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "c0201")
}

func TestExtract_DryRunWritesNothing(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle"}}, 101)
	opts := options(fsys, &testutil.FakeTool{})
	opts.DryRun = true

	result, err := extract.Extract(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Written)
	assert.True(t, result.DryRun)

	_, err = fsys.Stat("/work/out.hkx")
	assert.Error(t, err)
}

func TestExtract_ToolFailure(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle"}}, 101)
	tool := &testutil.FakeTool{
		CombineFunc: func(ctx context.Context, skeleton, animation []byte, index uint16) ([]byte, error) {
			return nil, errors.New(errors.ErrExternalTool, "no output")
		},
	}

	_, err := extract.Extract(context.Background(), options(fsys, tool))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExternalTool))
	_, statErr := fsys.Stat("/work/out.hkx")
	assert.Error(t, statErr, "no output file on failure")

	opts := options(fsys, tool)
	opts.DryRun = true
	result, err := extract.Extract(context.Background(), opts)
	require.NoError(t, err, "dry runs report tool failures as warnings")
	assert.NotEmpty(t, result.Warnings)
}

func TestExtract_MissingInputs(t *testing.T) {
	fsys := filesystem.NewMemory()

	_, err := extract.Extract(context.Background(), options(fsys, &testutil.FakeTool{}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestExtract_RequiresOutputPath(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle"}}, 101)
	opts := options(fsys, &testutil.FakeTool{})
	opts.OutputPath = ""

	_, err := extract.Extract(context.Background(), opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
