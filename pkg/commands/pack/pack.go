package pack

import (
	"context"
	"fmt"

	"github.com/lmcintyre/AnimAssist/pkg/bonemap"
	"github.com/lmcintyre/AnimAssist/pkg/commands/internal"
	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/filesystem"
	"github.com/lmcintyre/AnimAssist/pkg/havok"
	"github.com/lmcintyre/AnimAssist/pkg/logging"
	"github.com/lmcintyre/AnimAssist/pkg/pap"
	"github.com/lmcintyre/AnimAssist/pkg/sklb"
)

// PackOptions defines the options for the Pack command.
type PackOptions struct {
	FS   filesystem.FS
	Tool havok.Tool

	// SkeletonPath is the skeleton container the animation binds to.
	SkeletonPath string
	// AnimationPath is the original animation container to patch.
	AnimationPath string
	// ModifiedPath is the edited animation in tree-format text.
	ModifiedPath string
	// OutputPath receives the repacked animation container.
	OutputPath string
	DryRun     bool
}

// PackResult reports what Pack did.
type PackResult struct {
	SkeletonID          uint32   `json:"skeletonID" yaml:"skeletonID"`
	AnimationSkeletonID uint32   `json:"animationSkeletonID" yaml:"animationSkeletonID"`
	Tracks              []string `json:"tracks" yaml:"tracks"`
	BoneMap             string   `json:"boneMap" yaml:"boneMap"`
	PayloadBytes        int      `json:"payloadBytes" yaml:"payloadBytes"`
	TimelineOffset      uint32   `json:"timelineOffset" yaml:"timelineOffset"`
	OutputPath          string   `json:"outputPath" yaml:"outputPath"`
	OutputBytes         int      `json:"outputBytes" yaml:"outputBytes"`
	Written             bool     `json:"written" yaml:"written"`
	DryRun              bool     `json:"dryRun" yaml:"dryRun"`
	Warnings            []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Pack converts an edited animation back into the binary form, rewrites its
// bone indices against the skeleton and splices the result into a copy of
// the original animation container.
func Pack(ctx context.Context, opts PackOptions) (*PackResult, error) {
	logger := logging.GetLogger("commands.pack")
	logger.Debug().Str("command", "Pack").Msg("Executing command")

	if opts.OutputPath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "an output path is required")
	}
	if err := filesystem.RequireFiles(opts.FS, opts.ModifiedPath); err != nil {
		return nil, err
	}

	c, err := internal.LoadContainers(opts.FS, opts.SkeletonPath, opts.AnimationPath, logger)
	if err != nil {
		return nil, err
	}

	result := &PackResult{
		SkeletonID:          c.Skeleton.SkeletonID,
		AnimationSkeletonID: c.Animation.SkeletonID,
		OutputPath:          opts.OutputPath,
		DryRun:              opts.DryRun,
		Warnings:            c.Warnings,
	}
	if c.Animation.AnimationCount > 1 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"the animation container holds %d animations; all of them are replaced by the packed animation",
			c.Animation.AnimationCount))
	}

	modified, err := filesystem.ReadInput(opts.FS, opts.ModifiedPath, "modified animation")
	if err != nil {
		return nil, err
	}

	skelPayload, err := sklb.ExtractPayload(c.Skeleton, c.SkeletonData)
	if err != nil {
		return nil, err
	}

	skelXML, err := opts.Tool.TagSkeleton(ctx, skelPayload)
	if err != nil {
		return dryRunFailure(opts, result, err)
	}

	remapped, boneMap, err := bonemap.Remap(string(skelXML), string(modified))
	if err != nil {
		return nil, err
	}
	result.BoneMap = boneMap.String()
	for _, e := range boneMap {
		result.Tracks = append(result.Tracks, e.Track)
	}
	logger.Info().Int("tracks", len(boneMap)).Str("boneMap", result.BoneMap).Msg("Remapped bone indices")

	payload, err := opts.Tool.PackAnimation(ctx, []byte(remapped))
	if err != nil {
		return dryRunFailure(opts, result, err)
	}
	result.PayloadBytes = len(payload)

	out, err := pap.Repack(c.AnimationData, c.Animation, payload)
	if err != nil {
		return nil, err
	}
	result.OutputBytes = len(out)
	result.TimelineOffset, err = pap.NewTimelineOffset(c.Animation, len(payload))
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		logger.Info().Str("output", opts.OutputPath).Msg("Dry run, not writing output")
		return result, nil
	}

	if err := opts.FS.WriteFileAtomic(opts.OutputPath, out, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", opts.OutputPath).
			WithDetail("path", opts.OutputPath)
	}
	result.Written = true

	logger.Info().Str("command", "Pack").Str("output", opts.OutputPath).Int("bytes", len(out)).Msg("Command finished")
	return result, nil
}

// dryRunFailure turns a tool failure into a warning during dry runs so the
// remaining checks still report.
func dryRunFailure(opts PackOptions, result *PackResult, err error) (*PackResult, error) {
	if opts.DryRun && errors.IsErrorCode(err, errors.ErrExternalTool) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("dry run: %v", err))
		return result, nil
	}
	return nil, err
}
