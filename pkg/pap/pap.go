// Package pap decodes the animation container, slices out its Havok
// payload and rebuilds the container around a replacement payload.
//
// Layout (little-endian):
//
//	0   magic            [4]byte
//	4   version          uint32
//	8   animation count  uint16
//	10  skeleton id      uint32
//	14  info offset      uint32
//	18  payload offset   uint32
//	22  timeline offset  uint32
//	26  info table       count x 40-byte records
//
// The payload runs from the payload offset to the timeline offset and the
// timeline region runs to the end of the file.
package pap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/logging"
)

const (
	// HeaderSize is the length of the fixed prefix.
	HeaderSize = 26
	// EntrySize is the length of one info-table record.
	EntrySize = 40
	// NameSize is the length of the NUL padded name field of a record.
	NameSize = 32
	// TimelineOffsetPos is where the timeline offset field lives.
	TimelineOffsetPos = 22
)

// Header is a decoded animation container header.
type Header struct {
	Magic           [4]byte
	Version         uint32
	AnimationCount  uint16
	SkeletonID      uint32
	InfoTableOffset uint32
	PayloadOffset   uint32
	TimelineOffset  uint32
	Animations      []Entry
}

// Entry is one record of the animation info table.
type Entry struct {
	Name       string
	Unknown1   uint16
	HavokIndex uint16
	Unknown2   uint32
}

type rawHeader struct {
	Magic           [4]byte
	Version         uint32
	AnimationCount  uint16
	SkeletonID      uint32
	InfoTableOffset uint32
	PayloadOffset   uint32
	TimelineOffset  uint32
}

type rawEntry struct {
	Name       [NameSize]byte
	Unknown1   uint16
	HavokIndex uint16
	Unknown2   uint32
}

// EntryOffset returns the byte offset of info-table record i.
func EntryOffset(i int) int {
	return HeaderSize + EntrySize*i
}

// TableEnd returns the offset just past the info table of h.
func (h *Header) TableEnd() int {
	return EntryOffset(int(h.AnimationCount))
}

// Decode parses the fixed prefix and the info table at the start of b.
func Decode(b []byte) (*Header, error) {
	if len(b) < HeaderSize {
		return nil, errors.Newf(errors.ErrMalformedHeader,
			"animation header needs %d bytes, got %d", HeaderSize, len(b)).
			WithDetail("length", len(b))
	}

	var raw rawHeader
	if err := binary.Read(bytes.NewReader(b[:HeaderSize]), binary.LittleEndian, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedHeader, "failed to read animation header")
	}

	h := &Header{
		Magic:           raw.Magic,
		Version:         raw.Version,
		AnimationCount:  raw.AnimationCount,
		SkeletonID:      raw.SkeletonID,
		InfoTableOffset: raw.InfoTableOffset,
		PayloadOffset:   raw.PayloadOffset,
		TimelineOffset:  raw.TimelineOffset,
		Animations:      make([]Entry, 0, raw.AnimationCount),
	}

	if end := h.TableEnd(); len(b) < end {
		return nil, errors.Newf(errors.ErrMalformedHeader,
			"animation info table of %d entries needs %d bytes, got %d", h.AnimationCount, end, len(b)).
			WithDetail("field", "animation_count").
			WithDetail("count", h.AnimationCount).
			WithDetail("length", len(b))
	}

	for i := 0; i < int(h.AnimationCount); i++ {
		start := EntryOffset(i)
		var rec rawEntry
		if err := binary.Read(bytes.NewReader(b[start:start+EntrySize]), binary.LittleEndian, &rec); err != nil {
			return nil, errors.Wrapf(err, errors.ErrMalformedHeader, "failed to read animation entry %d", i)
		}
		name := rec.Name[:]
		if n := bytes.IndexByte(name, 0); n >= 0 {
			name = name[:n]
		}
		if !utf8.Valid(name) {
			return nil, errors.Newf(errors.ErrMalformedHeader, "animation entry %d has a name that is not valid UTF-8", i).
				WithDetail("field", "name").
				WithDetail("entry", i)
		}
		h.Animations = append(h.Animations, Entry{
			Name:       string(name),
			Unknown1:   rec.Unknown1,
			HavokIndex: rec.HavokIndex,
			Unknown2:   rec.Unknown2,
		})
	}

	logger := logging.GetLogger("pap")
	logger.Debug().
		Str("magic", fmt.Sprintf("%q", h.Magic[:])).
		Uint32("version", h.Version).
		Uint16("animations", h.AnimationCount).
		Uint32("skeletonID", h.SkeletonID).
		Uint32("payloadOffset", h.PayloadOffset).
		Uint32("timelineOffset", h.TimelineOffset).
		Msg("Decoded animation header")

	return h, nil
}

// Encode serializes the fixed prefix followed by the info table. Names
// longer than the name field are truncated.
func (h *Header) Encode() []byte {
	var buf bytes.Buffer
	buf.Grow(EntryOffset(len(h.Animations)))

	_ = binary.Write(&buf, binary.LittleEndian, rawHeader{
		Magic:           h.Magic,
		Version:         h.Version,
		AnimationCount:  h.AnimationCount,
		SkeletonID:      h.SkeletonID,
		InfoTableOffset: h.InfoTableOffset,
		PayloadOffset:   h.PayloadOffset,
		TimelineOffset:  h.TimelineOffset,
	})
	for _, e := range h.Animations {
		rec := rawEntry{Unknown1: e.Unknown1, HavokIndex: e.HavokIndex, Unknown2: e.Unknown2}
		copy(rec.Name[:], e.Name)
		_ = binary.Write(&buf, binary.LittleEndian, rec)
	}
	return buf.Bytes()
}

// ExtractPayload returns a copy of the Havok payload bounded by the
// timeline offset.
func ExtractPayload(h *Header, b []byte) ([]byte, error) {
	if err := checkBounds(h, len(b)); err != nil {
		return nil, err
	}
	return bytes.Clone(b[h.PayloadOffset:h.TimelineOffset]), nil
}

func checkBounds(h *Header, length int) error {
	if h.PayloadOffset > h.TimelineOffset {
		return errors.Newf(errors.ErrOutOfRange,
			"animation payload offset %d is past timeline offset %d", h.PayloadOffset, h.TimelineOffset).
			WithDetail("field", "payload_offset").
			WithDetail("offset", h.PayloadOffset).
			WithDetail("end", h.TimelineOffset)
	}
	if int64(h.TimelineOffset) > int64(length) {
		return errors.Newf(errors.ErrOutOfRange,
			"animation timeline offset %d exceeds file length %d", h.TimelineOffset, length).
			WithDetail("field", "timeline_offset").
			WithDetail("offset", h.TimelineOffset).
			WithDetail("length", length)
	}
	return nil
}
