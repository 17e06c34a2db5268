package inspect

import (
	"fmt"
	"strings"

	"github.com/lmcintyre/AnimAssist/pkg/commands/internal"
	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/filesystem"
	"github.com/lmcintyre/AnimAssist/pkg/internal/hashutil"
	"github.com/lmcintyre/AnimAssist/pkg/logging"
	"github.com/lmcintyre/AnimAssist/pkg/pap"
	"github.com/lmcintyre/AnimAssist/pkg/sklb"
)

// InspectOptions defines the options for the Inspect command. At least one
// of the paths must be set.
type InspectOptions struct {
	FS            filesystem.FS
	SkeletonPath  string
	AnimationPath string
}

// SkeletonInfo is the decoded view of a skeleton container.
type SkeletonInfo struct {
	Path           string    `json:"path" yaml:"path"`
	Size           int       `json:"size" yaml:"size"`
	Magic          string    `json:"magic" yaml:"magic"`
	Version        string    `json:"version" yaml:"version"`
	Layout         string    `json:"layout" yaml:"layout"`
	MetadataOffset uint32    `json:"metadataOffset" yaml:"metadataOffset"`
	PayloadOffset  uint32    `json:"payloadOffset" yaml:"payloadOffset"`
	PayloadBytes   int       `json:"payloadBytes" yaml:"payloadBytes"`
	PayloadSHA256  string    `json:"payloadSHA256" yaml:"payloadSHA256"`
	SkeletonID     uint32    `json:"skeletonID" yaml:"skeletonID"`
	RelatedIDs     [4]uint32 `json:"relatedIDs" yaml:"relatedIDs"`
}

// AnimationInfo is the decoded view of an animation container.
type AnimationInfo struct {
	Path            string          `json:"path" yaml:"path"`
	Size            int             `json:"size" yaml:"size"`
	Magic           string          `json:"magic" yaml:"magic"`
	Version         string          `json:"version" yaml:"version"`
	SkeletonID      uint32          `json:"skeletonID" yaml:"skeletonID"`
	InfoTableOffset uint32          `json:"infoTableOffset" yaml:"infoTableOffset"`
	PayloadOffset   uint32          `json:"payloadOffset" yaml:"payloadOffset"`
	TimelineOffset  uint32          `json:"timelineOffset" yaml:"timelineOffset"`
	PayloadBytes    int             `json:"payloadBytes" yaml:"payloadBytes"`
	PayloadSHA256   string          `json:"payloadSHA256" yaml:"payloadSHA256"`
	Repackable      bool            `json:"repackable" yaml:"repackable"`
	Animations      []pap.Candidate `json:"animations" yaml:"animations"`
}

// InspectResult holds whichever containers were inspected.
type InspectResult struct {
	Skeleton  *SkeletonInfo  `json:"skeleton,omitempty" yaml:"skeleton,omitempty"`
	Animation *AnimationInfo `json:"animation,omitempty" yaml:"animation,omitempty"`
	Warnings  []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Inspect decodes the given containers without modifying anything.
func Inspect(opts InspectOptions) (*InspectResult, error) {
	logger := logging.GetLogger("commands.inspect")
	logger.Debug().Str("command", "Inspect").Msg("Executing command")

	if opts.SkeletonPath == "" && opts.AnimationPath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "nothing to inspect, give a skeleton or an animation container")
	}

	var paths []string
	for _, p := range []string{opts.SkeletonPath, opts.AnimationPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if err := filesystem.RequireFiles(opts.FS, paths...); err != nil {
		return nil, err
	}

	result := &InspectResult{}
	var skel *sklb.Header
	var anim *pap.Header

	if opts.SkeletonPath != "" {
		data, err := filesystem.ReadInput(opts.FS, opts.SkeletonPath, "skeleton")
		if err != nil {
			return nil, err
		}
		if skel, err = sklb.Decode(data); err != nil {
			return nil, err
		}
		payload, err := sklb.ExtractPayload(skel, data)
		if err != nil {
			return nil, err
		}
		result.Skeleton = &SkeletonInfo{
			Path:           opts.SkeletonPath,
			Size:           len(data),
			Magic:          printable(skel.Magic[:]),
			Version:        fmt.Sprintf("0x%08x", skel.Version),
			Layout:         skel.Layout.String(),
			MetadataOffset: skel.MetadataOffset,
			PayloadOffset:  skel.PayloadOffset,
			PayloadBytes:   len(payload),
			PayloadSHA256:  hashutil.Checksum(payload),
			SkeletonID:     skel.SkeletonID,
			RelatedIDs:     skel.RelatedIDs,
		}
	}

	if opts.AnimationPath != "" {
		data, err := filesystem.ReadInput(opts.FS, opts.AnimationPath, "animation")
		if err != nil {
			return nil, err
		}
		if anim, err = pap.Decode(data); err != nil {
			return nil, err
		}
		payload, err := pap.ExtractPayload(anim, data)
		if err != nil {
			return nil, err
		}
		result.Animation = &AnimationInfo{
			Path:            opts.AnimationPath,
			Size:            len(data),
			Magic:           printable(anim.Magic[:]),
			Version:         fmt.Sprintf("0x%08x", anim.Version),
			SkeletonID:      anim.SkeletonID,
			InfoTableOffset: anim.InfoTableOffset,
			PayloadOffset:   anim.PayloadOffset,
			TimelineOffset:  anim.TimelineOffset,
			PayloadBytes:    len(payload),
			PayloadSHA256:   hashutil.Checksum(payload),
			Repackable:      int(anim.PayloadOffset) == anim.TableEnd(),
			Animations:      pap.Candidates(anim),
		}
		if !result.Animation.Repackable {
			result.Warnings = append(result.Warnings,
				"the payload does not start right after the info table; this container cannot be repacked")
		}
	}

	if skel != nil && anim != nil {
		if w := internal.SkeletonMismatch(skel, anim); w != "" {
			result.Warnings = append(result.Warnings, w)
		}
	}

	return result, nil
}

// printable renders a magic value, escaping bytes outside printable ASCII.
func printable(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	return sb.String()
}
