// pkg/commands/pack/pack_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS, FakeTool
// PURPOSE: Test tagging, remapping, packing and repacking an edited animation

package pack_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmcintyre/AnimAssist/pkg/commands/pack"
	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/filesystem"
	"github.com/lmcintyre/AnimAssist/pkg/pap"
	"github.com/lmcintyre/AnimAssist/pkg/testutil"
)

var timeline = testutil.Payload(6, 0xa0)

func setup(t *testing.T, anims []testutil.Animation, tracks []string) filesystem.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/work", 0755))
	require.NoError(t, fsys.WriteFile("/work/skl.sklb",
		testutil.SkeletonV2(44, 44, 0, 101, [4]uint32{}, testutil.Payload(10, 0x30)), 0644))
	require.NoError(t, fsys.WriteFile("/work/anim.pap",
		testutil.Pap(101, anims, testutil.Payload(20, 0x10), timeline), 0644))
	require.NoError(t, fsys.WriteFile("/work/modified.xml",
		[]byte(testutil.AnimationXML(tracks, "0 1")), 0644))
	return fsys
}

func skeletonTool() *testutil.FakeTool {
	return &testutil.FakeTool{
		TagSkeletonFunc: func(ctx context.Context, skeleton []byte) ([]byte, error) {
			return []byte(testutil.SkeletonXML("root", "spine", "head")), nil
		},
	}
}

func options(fsys filesystem.FS, tool *testutil.FakeTool) pack.PackOptions {
	return pack.PackOptions{
		FS:            fsys,
		Tool:          tool,
		SkeletonPath:  "/work/skl.sklb",
		AnimationPath: "/work/anim.pap",
		ModifiedPath:  "/work/modified.xml",
		OutputPath:    "/work/out.pap",
	}
}

func TestPack_RemapsAndRepacks(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle"}}, []string{"head", "root"})
	tool := skeletonTool()

	result, err := pack.Pack(context.Background(), options(fsys, tool))
	require.NoError(t, err)

	assert.Equal(t, []string{"tag-skeleton", "pack-animation"}, tool.Modes())
	assert.Equal(t, "2 0", result.BoneMap)
	assert.Equal(t, []string{"head", "root"}, result.Tracks)
	assert.True(t, result.Written)

	// The fake packer echoes its input, so the payload is the remapped text.
	packed := tool.Calls()[1].Inputs[0]
	assert.Contains(t, string(packed), `numelements="2">2 0</hkparam>`)

	out, err := fsys.ReadFile("/work/out.pap")
	require.NoError(t, err)
	assert.Equal(t, result.OutputBytes, len(out))

	h, err := pap.Decode(out)
	require.NoError(t, err)
	payload, err := pap.ExtractPayload(h, out)
	require.NoError(t, err)
	assert.Equal(t, packed, payload)
	assert.Equal(t, result.TimelineOffset, binary.LittleEndian.Uint32(out[pap.TimelineOffsetPos:]))
	assert.Equal(t, timeline, out[h.TimelineOffset:])
}

func TestPack_BoneNotFoundWritesNothing(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle"}}, []string{"head", "tail"})
	tool := skeletonTool()

	_, err := pack.Pack(context.Background(), options(fsys, tool))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBoneNotFound))
	assert.Equal(t, []string{"tag-skeleton"}, tool.Modes(), "packing never runs on a failed remap")

	_, statErr := fsys.Stat("/work/out.pap")
	assert.Error(t, statErr)
}

func TestPack_WarnsOnSeveralAnimations(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "a"}, {Name: "b", HavokIndex: 1}}, []string{"root"})

	result, err := pack.Pack(context.Background(), options(fsys, skeletonTool()))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "2 animations")
}

func TestPack_DryRun(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle"}}, []string{"spine"})
	opts := options(fsys, skeletonTool())
	opts.DryRun = true

	result, err := pack.Pack(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "1", result.BoneMap)
	assert.False(t, result.Written)
	assert.NotZero(t, result.OutputBytes)

	_, statErr := fsys.Stat("/work/out.pap")
	assert.Error(t, statErr)
}

func TestPack_ToolFailure(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle"}}, []string{"root"})
	tool := skeletonTool()
	tool.PackAnimationFunc = func(ctx context.Context, xml []byte) ([]byte, error) {
		return nil, errors.New(errors.ErrExternalTool, "output file missing")
	}

	_, err := pack.Pack(context.Background(), options(fsys, tool))
	assert.True(t, errors.IsErrorCode(err, errors.ErrExternalTool))

	opts := options(fsys, tool)
	opts.DryRun = true
	result, err := pack.Pack(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "0", result.BoneMap)
	assert.NotEmpty(t, result.Warnings)
}

func TestPack_MissingModifiedFile(t *testing.T) {
	fsys := setup(t, []testutil.Animation{{Name: "idle"}}, []string{"root"})
	opts := options(fsys, skeletonTool())
	opts.ModifiedPath = "/work/absent.xml"

	_, err := pack.Pack(context.Background(), opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}
