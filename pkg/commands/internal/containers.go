package internal

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lmcintyre/AnimAssist/pkg/filesystem"
	"github.com/lmcintyre/AnimAssist/pkg/pap"
	"github.com/lmcintyre/AnimAssist/pkg/sklb"
)

// Containers holds one read of a skeleton and an animation container.
type Containers struct {
	SkeletonData  []byte
	Skeleton      *sklb.Header
	AnimationData []byte
	Animation     *pap.Header
	Warnings      []string
}

// LoadContainers reads and decodes both containers and records the
// advisory warnings for the pair.
func LoadContainers(fsys filesystem.FS, skeletonPath, animationPath string, logger zerolog.Logger) (*Containers, error) {
	if err := filesystem.RequireFiles(fsys, skeletonPath, animationPath); err != nil {
		return nil, err
	}

	skelData, err := filesystem.ReadInput(fsys, skeletonPath, "skeleton")
	if err != nil {
		return nil, err
	}
	animData, err := filesystem.ReadInput(fsys, animationPath, "animation")
	if err != nil {
		return nil, err
	}

	skel, err := sklb.Decode(skelData)
	if err != nil {
		return nil, err
	}
	anim, err := pap.Decode(animData)
	if err != nil {
		return nil, err
	}

	c := &Containers{
		SkeletonData:  skelData,
		Skeleton:      skel,
		AnimationData: animData,
		Animation:     anim,
	}

	logger.Info().
		Uint32("skeletonID", skel.SkeletonID).
		Uint32("animationSkeletonID", anim.SkeletonID).
		Uint16("animations", anim.AnimationCount).
		Msg("Loaded containers")

	if w := SkeletonMismatch(skel, anim); w != "" {
		logger.Warn().
			Uint32("skeletonID", skel.SkeletonID).
			Uint32("animationSkeletonID", anim.SkeletonID).
			Msg("Skeleton and animation are for different skeletons")
		c.Warnings = append(c.Warnings, w)
	}

	return c, nil
}

// SkeletonMismatch returns a warning when the containers name different
// skeleton IDs. The IDs are advisory, so this never fails.
func SkeletonMismatch(skel *sklb.Header, anim *pap.Header) string {
	if skel.SkeletonID == anim.SkeletonID {
		return ""
	}
	return fmt.Sprintf("skeleton file is for c%04d but the animation is for c%04d; results will likely be broken",
		skel.SkeletonID, anim.SkeletonID)
}
