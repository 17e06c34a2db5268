package bonemap

import (
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
)

// Parameter names used by Havok XML packfiles.
const (
	ParamBones            = "bones"
	ParamBoneName         = "name"
	ParamAnnotationTracks = "annotationTracks"
	ParamTrackName        = "trackName"
	ParamTrackToBone      = "transformTrackToBoneIndices"
)

const paramTag = "hkparam"

// passthroughCharset accepts the ascii encoding Havok declares.
func passthroughCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

func parseDocument(text, what string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = passthroughCharset
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(text); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTreeFormat, "failed to parse %s tree", what)
	}
	return doc, nil
}

func paramPath(name string) string {
	return paramTag + "[@name='" + name + "']"
}

// findParam returns the first hkparam named name anywhere below root.
func findParam(root *etree.Element, name string) *etree.Element {
	return root.FindElement(".//" + paramPath(name))
}

// collectNames returns the text of every child parameter named child below
// the first parameter block named block, in document order.
func collectNames(text, what, block, child string) ([]string, error) {
	doc, err := parseDocument(text, what)
	if err != nil {
		return nil, err
	}

	blockEl := findParam(&doc.Element, block)
	if blockEl == nil {
		return nil, errors.Newf(errors.ErrTreeFormat, "%s tree has no %q parameter", what, block).
			WithDetail("parameter", block)
	}

	elements := blockEl.FindElements(".//" + paramPath(child))
	names := make([]string, len(elements))
	for i, el := range elements {
		names[i] = innerText(el)
	}
	return names, nil
}

// innerText concatenates all character data below el.
func innerText(el *etree.Element) string {
	var sb strings.Builder
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return sb.String()
}

// SkeletonBones returns the skeleton's bone names in bone order.
func SkeletonBones(skeletonXML string) ([]string, error) {
	return collectNames(skeletonXML, "skeleton", ParamBones, ParamBoneName)
}

// AnimationTracks returns the animation's annotation track names in track order.
func AnimationTracks(animationXML string) ([]string, error) {
	return collectNames(animationXML, "animation", ParamAnnotationTracks, ParamTrackName)
}
