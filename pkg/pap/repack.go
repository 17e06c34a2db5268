package pap

import (
	"encoding/binary"
	"math"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/logging"
)

// Candidate describes one embedded animation a caller can choose from.
type Candidate struct {
	Index      int    `json:"index" yaml:"index"`
	Name       string `json:"name" yaml:"name"`
	HavokIndex uint16 `json:"havokIndex" yaml:"havokIndex"`
}

// Candidates lists the animations of h in table order.
func Candidates(h *Header) []Candidate {
	out := make([]Candidate, len(h.Animations))
	for i, e := range h.Animations {
		out[i] = Candidate{Index: i, Name: e.Name, HavokIndex: e.HavokIndex}
	}
	return out
}

// Select returns the Havok track index of the animation at the 0-based
// position index.
func Select(h *Header, index int) (uint16, error) {
	if index < 0 || index >= len(h.Animations) {
		return 0, errors.Newf(errors.ErrInvalidSelection,
			"animation %d does not exist, the container holds %d", index, len(h.Animations)).
			WithDetail("index", index).
			WithDetail("count", len(h.Animations))
	}
	return h.Animations[index].HavokIndex, nil
}

// NewTimelineOffset computes the timeline offset of a container whose
// payload is replaced by one of payloadLen bytes.
func NewTimelineOffset(h *Header, payloadLen int) (uint32, error) {
	offset := int64(h.TableEnd()) + int64(payloadLen)
	if payloadLen < 0 || offset > math.MaxUint32 {
		return 0, errors.Newf(errors.ErrOutOfRange,
			"timeline offset %d does not fit the 32-bit offset field", offset).
			WithDetail("field", "timeline_offset").
			WithDetail("payloadLength", payloadLen)
	}
	return uint32(offset), nil
}

// TimelineOffsetField returns the little-endian bytes patched into the
// timeline offset field for a payload of payloadLen bytes.
func TimelineOffsetField(h *Header, payloadLen int) ([4]byte, error) {
	var field [4]byte
	offset, err := NewTimelineOffset(h, payloadLen)
	if err != nil {
		return field, err
	}
	binary.LittleEndian.PutUint32(field[:], offset)
	return field, nil
}

// Repack builds a new container from original with its payload replaced.
// Everything before the payload is copied with only the timeline offset
// field patched, followed by payload and the original timeline region.
// The result never aliases original.
//
// The patched timeline offset is computed as 26 + 40*count + len(payload),
// which is only the end of the new payload when the payload starts right
// after the info table. A container with bytes between the table and the
// payload is refused with ErrMalformedHeader: repacking it would record a
// timeline offset that points short of the real timeline, and extracting
// from the result would no longer return payload.
func Repack(original []byte, h *Header, payload []byte) ([]byte, error) {
	if err := checkBounds(h, len(original)); err != nil {
		return nil, err
	}
	if int(h.PayloadOffset) != h.TableEnd() {
		return nil, errors.Newf(errors.ErrMalformedHeader,
			"payload offset %d does not follow the info table ending at %d", h.PayloadOffset, h.TableEnd()).
			WithDetail("field", "payload_offset").
			WithDetail("offset", h.PayloadOffset).
			WithDetail("tableEnd", h.TableEnd())
	}

	field, err := TimelineOffsetField(h, len(payload))
	if err != nil {
		return nil, err
	}

	prefix := original[:h.PayloadOffset]
	suffix := original[h.TimelineOffset:]

	out := make([]byte, 0, len(prefix)+len(payload)+len(suffix))
	out = append(out, prefix...)
	copy(out[TimelineOffsetPos:TimelineOffsetPos+4], field[:])
	out = append(out, payload...)
	out = append(out, suffix...)

	logger := logging.GetLogger("pap")
	logger.Info().
		Int("prefix", len(prefix)).
		Int("payload", len(payload)).
		Int("timeline", len(suffix)).
		Uint32("timelineOffset", binary.LittleEndian.Uint32(field[:])).
		Msg("Repacked animation container")

	return out, nil
}
