// Package bonemap translates an animation's transform-track to bone index
// table into the bone order of a skeleton.
//
// Edited animations come back from external tools indexed by that tool's
// own bone order. The annotation tracks of the animation name the bones in
// track order, so each track name is looked up in the skeleton's bone list
// and the resulting indices replace the transformTrackToBoneIndices value.
//
// Both inputs are Havok XML packfiles. Lookups run on a parsed tree; the
// rewrite splices the new value into the original text so the rest of the
// document stays byte-identical.
package bonemap
