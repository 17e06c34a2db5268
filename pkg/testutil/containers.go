package testutil

import (
	"encoding/binary"
)

// SkeletonVersionV2 is the version value that selects the wide skeleton layout.
const SkeletonVersionV2 uint32 = 0x31333030

// SkeletonMagic and AnimationMagic are the magic values found in game files.
var (
	SkeletonMagic  = [4]byte{'b', 'l', 'k', 's'}
	AnimationMagic = [4]byte{'p', 'a', 'p', ' '}
)

// SkeletonV1 builds a narrow-layout skeleton container. The header is zero
// padded up to payloadOffset and followed by payload.
func SkeletonV1(version uint32, metadataOffset, payloadOffset uint16, skeletonID uint32, related [4]uint32, payload []byte) []byte {
	b := make([]byte, 32)
	copy(b[0:4], SkeletonMagic[:])
	binary.LittleEndian.PutUint32(b[4:8], version)
	binary.LittleEndian.PutUint16(b[8:10], metadataOffset)
	binary.LittleEndian.PutUint16(b[10:12], payloadOffset)
	binary.LittleEndian.PutUint32(b[12:16], skeletonID)
	for i, id := range related {
		binary.LittleEndian.PutUint32(b[16+4*i:20+4*i], id)
	}
	return pad(b, int(payloadOffset), payload)
}

// SkeletonV2 builds a wide-layout skeleton container. The trailing header
// word at [40:44) is left zero.
func SkeletonV2(metadataOffset, payloadOffset, unknown, skeletonID uint32, related [4]uint32, payload []byte) []byte {
	b := make([]byte, 44)
	copy(b[0:4], SkeletonMagic[:])
	binary.LittleEndian.PutUint32(b[4:8], SkeletonVersionV2)
	binary.LittleEndian.PutUint32(b[8:12], metadataOffset)
	binary.LittleEndian.PutUint32(b[12:16], payloadOffset)
	binary.LittleEndian.PutUint32(b[16:20], unknown)
	binary.LittleEndian.PutUint32(b[20:24], skeletonID)
	for i, id := range related {
		binary.LittleEndian.PutUint32(b[24+4*i:28+4*i], id)
	}
	return pad(b, int(payloadOffset), payload)
}

// Animation describes one info-table record of an animation container.
type Animation struct {
	Name       string
	Unknown1   uint16
	HavokIndex uint16
	Unknown2   uint32
}

// Pap builds an animation container whose payload directly follows the
// info table and whose timeline region directly follows the payload.
func Pap(skeletonID uint32, anims []Animation, payload, timeline []byte) []byte {
	payloadOffset := 26 + 40*len(anims)
	timelineOffset := payloadOffset + len(payload)

	b := make([]byte, 26, timelineOffset+len(timeline))
	copy(b[0:4], AnimationMagic[:])
	binary.LittleEndian.PutUint32(b[4:8], 0x00020001)
	binary.LittleEndian.PutUint16(b[8:10], uint16(len(anims)))
	binary.LittleEndian.PutUint32(b[10:14], skeletonID)
	binary.LittleEndian.PutUint32(b[14:18], 26)
	binary.LittleEndian.PutUint32(b[18:22], uint32(payloadOffset))
	binary.LittleEndian.PutUint32(b[22:26], uint32(timelineOffset))

	for _, a := range anims {
		b = append(b, AnimationRecord(a)...)
	}
	b = append(b, payload...)
	return append(b, timeline...)
}

// AnimationRecord encodes a single 40-byte info-table record.
func AnimationRecord(a Animation) []byte {
	rec := make([]byte, 40)
	copy(rec[0:32], a.Name)
	binary.LittleEndian.PutUint16(rec[32:34], a.Unknown1)
	binary.LittleEndian.PutUint16(rec[34:36], a.HavokIndex)
	binary.LittleEndian.PutUint32(rec[36:40], a.Unknown2)
	return rec
}

// Payload returns n deterministic bytes counting up from seed.
func Payload(n int, seed byte) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = seed + byte(i)
	}
	return p
}

func pad(header []byte, offset int, payload []byte) []byte {
	if offset < len(header) {
		offset = len(header)
	}
	out := make([]byte, offset, offset+len(payload))
	copy(out, header)
	return append(out, payload...)
}
