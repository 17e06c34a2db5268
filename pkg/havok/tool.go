// Package havok is the boundary with the external Havok conversion tool.
//
// The tool is a black box with three modes:
//
//	1 <skeleton.hkx> <out.xml>                           skeleton to XML packfile
//	2 <edited.xml> <out.hkx>                             XML packfile to binary tagfile
//	3 <skeleton.hkx> <animation.hkx> <index> <out.hkx>   combine for import
//
// Callers depend on the Tool interface; ExecTool runs the real executable.
package havok

import "context"

// Mode selects the conversion the tool performs.
type Mode int

const (
	// ModeTagSkeleton converts a binary skeleton to an XML packfile.
	ModeTagSkeleton Mode = 1
	// ModePackAnimation converts an edited XML packfile to a binary tagfile.
	ModePackAnimation Mode = 2
	// ModeCombine merges one animation into a skeleton for import.
	ModeCombine Mode = 3
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeTagSkeleton:
		return "tag-skeleton"
	case ModePackAnimation:
		return "pack-animation"
	case ModeCombine:
		return "combine"
	default:
		return "unknown"
	}
}

// Tool converts between raw Havok payloads and tree-format text.
type Tool interface {
	// TagSkeleton converts a binary skeleton payload to XML packfile text.
	TagSkeleton(ctx context.Context, skeleton []byte) ([]byte, error)
	// PackAnimation converts edited XML packfile text to a binary payload.
	PackAnimation(ctx context.Context, xml []byte) ([]byte, error)
	// Combine merges the animation at havok index into the skeleton and
	// returns an importable packfile.
	Combine(ctx context.Context, skeleton, animation []byte, index uint16) ([]byte, error)
}
