package bonemap

import (
	"strconv"
	"strings"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/logging"
)

// Entry maps one animation track to a skeleton bone index.
type Entry struct {
	Track string
	Bone  int
}

// Map is the ordered track to bone translation, one entry per track.
type Map []Entry

// Indices returns the bone indices in track order.
func (m Map) Indices() []int {
	out := make([]int, len(m))
	for i, e := range m {
		out[i] = e.Bone
	}
	return out
}

// String serializes the indices as space separated decimals.
func (m Map) String() string {
	parts := make([]string, len(m))
	for i, e := range m {
		parts[i] = strconv.Itoa(e.Bone)
	}
	return strings.Join(parts, " ")
}

// Build looks each track up in bones and records the index of the first
// bone with the same name. Duplicate bone names are not detected.
func Build(bones, tracks []string) (Map, error) {
	m := make(Map, 0, len(tracks))
	for i, track := range tracks {
		bone := indexOf(bones, track)
		if bone < 0 {
			return nil, errors.Newf(errors.ErrBoneNotFound,
				"animation track %q has no matching skeleton bone", track).
				WithDetail("track", track).
				WithDetail("trackIndex", i).
				WithDetail("bones", len(bones))
		}
		m = append(m, Entry{Track: track, Bone: bone})
	}
	return m, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// Remap rewrites the transformTrackToBoneIndices value of animationXML so
// that it indexes the bones of skeletonXML. Only that value's text changes.
func Remap(skeletonXML, animationXML string) (string, Map, error) {
	logger := logging.GetLogger("bonemap")

	bones, err := SkeletonBones(skeletonXML)
	if err != nil {
		return "", nil, err
	}
	tracks, err := AnimationTracks(animationXML)
	if err != nil {
		return "", nil, err
	}

	m, err := Build(bones, tracks)
	if err != nil {
		return "", nil, err
	}

	span, err := findParamSpan(animationXML, ParamTrackToBone)
	if err != nil {
		return "", nil, err
	}

	value := m.String()
	logger.Debug().
		Int("bones", len(bones)).
		Int("tracks", len(tracks)).
		Str("old", animationXML[span.start:span.end]).
		Str("new", value).
		Msg("Remapped track to bone indices")

	return splice(animationXML, span, value), m, nil
}
