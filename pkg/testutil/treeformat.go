package testutil

import (
	"strconv"
	"strings"
)

// SkeletonXML builds a minimal Havok XML packfile holding one skeleton with
// the given bone names.
func SkeletonXML(bones ...string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="ascii"?>` + "\n")
	sb.WriteString(`<hkpackfile classversion="8" contentsversion="hk_2014.1.0-r1" toplevelobject="#0040">` + "\n")
	sb.WriteString(`	<hksection name="__data__">` + "\n")
	sb.WriteString(`		<hkobject name="#0041" class="hkaSkeleton" signature="0xfec1cedb">` + "\n")
	sb.WriteString(`			<hkparam name="name">skeleton</hkparam>` + "\n")
	sb.WriteString(`			<hkparam name="parentIndices" numelements="` + strconv.Itoa(len(bones)) + `">` + sequence(len(bones)) + `</hkparam>` + "\n")
	sb.WriteString(`			<hkparam name="bones" numelements="` + strconv.Itoa(len(bones)) + `">` + "\n")
	for _, b := range bones {
		sb.WriteString(`				<hkobject>` + "\n")
		sb.WriteString(`					<hkparam name="name">` + b + `</hkparam>` + "\n")
		sb.WriteString(`					<hkparam name="lockTranslation">false</hkparam>` + "\n")
		sb.WriteString(`				</hkobject>` + "\n")
	}
	sb.WriteString(`			</hkparam>` + "\n")
	sb.WriteString(`		</hkobject>` + "\n")
	sb.WriteString(`	</hksection>` + "\n")
	sb.WriteString(`</hkpackfile>` + "\n")
	return sb.String()
}

// AnimationXML builds a minimal Havok XML packfile holding one animation
// with the given annotation track names and an animation binding whose
// transformTrackToBoneIndices value is indices.
func AnimationXML(tracks []string, indices string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="ascii"?>` + "\n")
	sb.WriteString(`<hkpackfile classversion="8" contentsversion="hk_2014.1.0-r1" toplevelobject="#0050">` + "\n")
	sb.WriteString(`	<hksection name="__data__">` + "\n")
	sb.WriteString(`		<hkobject name="#0051" class="hkaSplineCompressedAnimation" signature="0x792ee0bb">` + "\n")
	sb.WriteString(`			<hkparam name="numberOfTransformTracks">` + strconv.Itoa(len(tracks)) + `</hkparam>` + "\n")
	sb.WriteString(`			<hkparam name="annotationTracks" numelements="` + strconv.Itoa(len(tracks)) + `">` + "\n")
	for _, tr := range tracks {
		sb.WriteString(`				<hkobject>` + "\n")
		sb.WriteString(`					<hkparam name="trackName">` + tr + `</hkparam>` + "\n")
		sb.WriteString(`					<hkparam name="annotations" numelements="0"></hkparam>` + "\n")
		sb.WriteString(`				</hkobject>` + "\n")
	}
	sb.WriteString(`			</hkparam>` + "\n")
	sb.WriteString(`		</hkobject>` + "\n")
	sb.WriteString(`		<hkobject name="#0052" class="hkaAnimationBinding" signature="0x66eac971">` + "\n")
	sb.WriteString(`			<hkparam name="originalSkeletonName">skeleton</hkparam>` + "\n")
	sb.WriteString(`			<hkparam name="animation">#0051</hkparam>` + "\n")
	sb.WriteString(`			<hkparam name="transformTrackToBoneIndices" numelements="` + strconv.Itoa(len(tracks)) + `">` + indices + `</hkparam>` + "\n")
	sb.WriteString(`			<hkparam name="floatTrackToFloatSlotIndices" numelements="0"></hkparam>` + "\n")
	sb.WriteString(`		</hkobject>` + "\n")
	sb.WriteString(`	</hksection>` + "\n")
	sb.WriteString(`</hkpackfile>` + "\n")
	return sb.String()
}

func sequence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.Itoa(i - 1)
	}
	return strings.Join(parts, " ")
}
