// Package sklb decodes the skeleton container header and slices out the
// Havok payload embedded in it.
//
// Two header layouts exist. Files whose version reads 0x31333030 ("0031")
// use 32-bit offsets and carry an extra unknown field; every other version
// uses 16-bit offsets. Magic and version values are surfaced as read and are
// not validated.
package sklb

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/logging"
)

// VersionV2 selects the wide header layout.
const VersionV2 uint32 = 0x31333030

// Layout identifies one of the two on-disk header shapes.
type Layout int

const (
	// LayoutV1 uses 16-bit offset fields.
	LayoutV1 Layout = iota + 1
	// LayoutV2 uses 32-bit offset fields and an extra unknown field.
	LayoutV2
)

// Header sizes per layout.
const (
	sizeV1     = 32
	sizeV2     = 44
	prefixSize = 8
)

// String returns the layout name
func (l Layout) String() string {
	switch l {
	case LayoutV1:
		return "v1"
	case LayoutV2:
		return "v2"
	default:
		return "unknown"
	}
}

// Size returns the fixed header length for the layout, or 0 for a layout
// that is neither LayoutV1 nor LayoutV2.
func (l Layout) Size() int {
	switch l {
	case LayoutV1:
		return sizeV1
	case LayoutV2:
		return sizeV2
	default:
		return 0
	}
}

// LayoutFor returns the layout used by files carrying the given version.
func LayoutFor(version uint32) Layout {
	if version == VersionV2 {
		return LayoutV2
	}
	return LayoutV1
}

// Header is a decoded skeleton container header.
type Header struct {
	Magic          [4]byte
	Version        uint32
	Layout         Layout
	MetadataOffset uint32
	PayloadOffset  uint32
	// Unknown is only present in LayoutV2 files.
	Unknown    uint32
	SkeletonID uint32
	RelatedIDs [4]uint32
	// Trailer is the last word of a LayoutV2 header. It is kept as read so
	// the header re-encodes byte for byte.
	Trailer uint32
}

// Size returns the encoded header length.
func (h *Header) Size() int {
	return h.Layout.Size()
}

// v1 and v2 mirror the on-disk field order.
type v1 struct {
	Magic          [4]byte
	Version        uint32
	MetadataOffset uint16
	PayloadOffset  uint16
	SkeletonID     uint32
	RelatedIDs     [4]uint32
}

type v2 struct {
	Magic          [4]byte
	Version        uint32
	MetadataOffset uint32
	PayloadOffset  uint32
	Unknown        uint32
	SkeletonID     uint32
	RelatedIDs     [4]uint32
	Trailer        uint32
}

// Decode parses the fixed skeleton header at the start of b.
func Decode(b []byte) (*Header, error) {
	if len(b) < prefixSize {
		return nil, errors.Newf(errors.ErrMalformedHeader,
			"skeleton header needs at least %d bytes, got %d", prefixSize, len(b)).
			WithDetail("field", "version").
			WithDetail("length", len(b))
	}

	version := binary.LittleEndian.Uint32(b[4:8])
	layout := LayoutFor(version)
	if len(b) < layout.Size() {
		return nil, errors.Newf(errors.ErrMalformedHeader,
			"skeleton header (%s) needs %d bytes, got %d", layout, layout.Size(), len(b)).
			WithDetail("layout", layout.String()).
			WithDetail("length", len(b))
	}

	r := bytes.NewReader(b[:layout.Size()])
	h := &Header{Layout: layout}

	switch layout {
	case LayoutV2:
		var raw v2
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrMalformedHeader, "failed to read skeleton header")
		}
		h.Magic = raw.Magic
		h.Version = raw.Version
		h.MetadataOffset = raw.MetadataOffset
		h.PayloadOffset = raw.PayloadOffset
		h.Unknown = raw.Unknown
		h.SkeletonID = raw.SkeletonID
		h.RelatedIDs = raw.RelatedIDs
		h.Trailer = raw.Trailer
	default:
		var raw v1
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrMalformedHeader, "failed to read skeleton header")
		}
		h.Magic = raw.Magic
		h.Version = raw.Version
		h.MetadataOffset = uint32(raw.MetadataOffset)
		h.PayloadOffset = uint32(raw.PayloadOffset)
		h.SkeletonID = raw.SkeletonID
		h.RelatedIDs = raw.RelatedIDs
	}

	logger := logging.GetLogger("sklb")
	logger.Debug().
		Str("magic", fmt.Sprintf("%q", h.Magic[:])).
		Uint32("version", h.Version).
		Str("layout", h.Layout.String()).
		Uint32("payloadOffset", h.PayloadOffset).
		Uint32("skeletonID", h.SkeletonID).
		Msg("Decoded skeleton header")

	return h, nil
}

// Encode serializes the fixed fields in the header's layout. Offsets wider
// than 16 bits are truncated in LayoutV1. A header without a known layout,
// such as the zero Header, encodes to nil.
func (h *Header) Encode() []byte {
	var raw interface{}
	switch h.Layout {
	case LayoutV2:
		raw = v2{
			Magic:          h.Magic,
			Version:        h.Version,
			MetadataOffset: h.MetadataOffset,
			PayloadOffset:  h.PayloadOffset,
			Unknown:        h.Unknown,
			SkeletonID:     h.SkeletonID,
			RelatedIDs:     h.RelatedIDs,
			Trailer:        h.Trailer,
		}
	case LayoutV1:
		raw = v1{
			Magic:          h.Magic,
			Version:        h.Version,
			MetadataOffset: uint16(h.MetadataOffset),
			PayloadOffset:  uint16(h.PayloadOffset),
			SkeletonID:     h.SkeletonID,
			RelatedIDs:     h.RelatedIDs,
		}
	default:
		return nil
	}

	var buf bytes.Buffer
	buf.Grow(h.Size())
	// Writes into a bytes.Buffer only fail on unsupported types.
	_ = binary.Write(&buf, binary.LittleEndian, raw)
	return buf.Bytes()
}

// ExtractPayload returns a copy of the Havok payload, which runs from the
// payload offset to the end of the file.
func ExtractPayload(h *Header, b []byte) ([]byte, error) {
	if int64(h.PayloadOffset) > int64(len(b)) {
		return nil, errors.Newf(errors.ErrOutOfRange,
			"skeleton payload offset %d exceeds file length %d", h.PayloadOffset, len(b)).
			WithDetail("field", "payload_offset").
			WithDetail("offset", h.PayloadOffset).
			WithDetail("length", len(b))
	}
	return bytes.Clone(b[h.PayloadOffset:]), nil
}
