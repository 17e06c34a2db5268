package extract

import (
	"context"
	"fmt"

	"github.com/lmcintyre/AnimAssist/pkg/commands/internal"
	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/filesystem"
	"github.com/lmcintyre/AnimAssist/pkg/havok"
	"github.com/lmcintyre/AnimAssist/pkg/logging"
	"github.com/lmcintyre/AnimAssist/pkg/pap"
	"github.com/lmcintyre/AnimAssist/pkg/sklb"
)

// NoSelection means the caller did not choose an animation.
const NoSelection = -1

// ExtractOptions defines the options for the Extract command.
type ExtractOptions struct {
	FS   filesystem.FS
	Tool havok.Tool

	// SkeletonPath is the input skeleton container.
	SkeletonPath string
	// AnimationPath is the input animation container.
	AnimationPath string
	// OutputPath receives the importable Havok packfile.
	OutputPath string
	// Selection is the 0-based animation to extract. It is required when
	// the container holds more than one animation.
	Selection int
	// DryRun runs every step but writes nothing.
	DryRun bool
}

// ExtractResult reports what Extract did.
type ExtractResult struct {
	SkeletonID          uint32          `json:"skeletonID" yaml:"skeletonID"`
	AnimationSkeletonID uint32          `json:"animationSkeletonID" yaml:"animationSkeletonID"`
	Candidates          []pap.Candidate `json:"candidates" yaml:"candidates"`
	Selection           int             `json:"selection" yaml:"selection"`
	HavokIndex          uint16          `json:"havokIndex" yaml:"havokIndex"`
	OutputPath          string          `json:"outputPath" yaml:"outputPath"`
	OutputBytes         int             `json:"outputBytes" yaml:"outputBytes"`
	Written             bool            `json:"written" yaml:"written"`
	DryRun              bool            `json:"dryRun" yaml:"dryRun"`
	Warnings            []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Extract pulls the Havok payloads out of a skeleton and an animation
// container and has the tool combine them into one importable file.
func Extract(ctx context.Context, opts ExtractOptions) (*ExtractResult, error) {
	logger := logging.GetLogger("commands.extract")
	logger.Debug().Str("command", "Extract").Msg("Executing command")

	if opts.OutputPath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "an output path is required")
	}

	c, err := internal.LoadContainers(opts.FS, opts.SkeletonPath, opts.AnimationPath, logger)
	if err != nil {
		return nil, err
	}

	result := &ExtractResult{
		SkeletonID:          c.Skeleton.SkeletonID,
		AnimationSkeletonID: c.Animation.SkeletonID,
		Candidates:          pap.Candidates(c.Animation),
		Selection:           opts.Selection,
		OutputPath:          opts.OutputPath,
		DryRun:              opts.DryRun,
		Warnings:            c.Warnings,
	}

	havokIndex, err := chooseAnimation(c.Animation, opts.Selection)
	if err != nil {
		return nil, err
	}
	result.HavokIndex = havokIndex
	if c.Animation.AnimationCount > 1 {
		result.Warnings = append(result.Warnings,
			"this animation container holds several animations; an edited animation cannot be packed back into it")
	}

	skelPayload, err := sklb.ExtractPayload(c.Skeleton, c.SkeletonData)
	if err != nil {
		return nil, err
	}
	animPayload, err := pap.ExtractPayload(c.Animation, c.AnimationData)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("skeletonPayload", len(skelPayload)).
		Int("animationPayload", len(animPayload)).
		Uint16("havokIndex", havokIndex).
		Msg("Combining payloads")

	combined, err := opts.Tool.Combine(ctx, skelPayload, animPayload, havokIndex)
	if err != nil {
		if opts.DryRun && errors.IsErrorCode(err, errors.ErrExternalTool) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("dry run: %v", err))
			return result, nil
		}
		return nil, err
	}
	result.OutputBytes = len(combined)

	if opts.DryRun {
		logger.Info().Str("output", opts.OutputPath).Msg("Dry run, not writing output")
		return result, nil
	}

	if err := opts.FS.WriteFileAtomic(opts.OutputPath, combined, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", opts.OutputPath).
			WithDetail("path", opts.OutputPath)
	}
	result.Written = true

	logger.Info().Str("command", "Extract").Str("output", opts.OutputPath).Int("bytes", len(combined)).Msg("Command finished")
	return result, nil
}

// chooseAnimation resolves the Havok index to combine. A single-animation
// container needs no selection and always uses index 0.
func chooseAnimation(h *pap.Header, selection int) (uint16, error) {
	if selection != NoSelection {
		return pap.Select(h, selection)
	}
	switch h.AnimationCount {
	case 0:
		return 0, errors.New(errors.ErrInvalidSelection, "the animation container holds no animations")
	case 1:
		return 0, nil
	default:
		return 0, errors.Newf(errors.ErrInvalidSelection,
			"the animation container holds %d animations, choose one with a selection index", h.AnimationCount).
			WithDetail("count", h.AnimationCount).
			WithDetail("candidates", pap.Candidates(h))
	}
}
