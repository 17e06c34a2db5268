package animassist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lmcintyre/AnimAssist/pkg/commands/extract"
	"github.com/lmcintyre/AnimAssist/pkg/commands/inspect"
	"github.com/lmcintyre/AnimAssist/pkg/commands/pack"
	"github.com/lmcintyre/AnimAssist/pkg/pap"
	"github.com/lmcintyre/AnimAssist/pkg/ui"
)

func titled(title string, dryRun bool) string {
	if dryRun {
		return title + " (" + MsgDryRunNotice + ")"
	}
	return title
}

func hex(v uint32) string {
	return fmt.Sprintf("0x%x", v)
}

func candidatesSection(candidates []pap.Candidate) ui.Section {
	s := ui.Section{Title: MsgAnimsTitle, Header: []string{"#", "Name", "Havok index"}}
	for _, c := range candidates {
		s.Rows = append(s.Rows, []string{strconv.Itoa(c.Index), c.Name, strconv.Itoa(int(c.HavokIndex))})
	}
	return s
}

func extractView(r *extract.ExtractResult) ui.Document {
	rows := [][]string{
		{"Skeleton ID", strconv.FormatUint(uint64(r.SkeletonID), 10)},
		{"Animation skeleton ID", strconv.FormatUint(uint64(r.AnimationSkeletonID), 10)},
		{"Havok index", strconv.Itoa(int(r.HavokIndex))},
		{"Output", r.OutputPath},
		{"Output bytes", strconv.Itoa(r.OutputBytes)},
		{"Written", strconv.FormatBool(r.Written)},
	}
	return ui.Document{
		Title:    titled(MsgExtractTitle, r.DryRun),
		Sections: []ui.Section{{Rows: rows}, candidatesSection(r.Candidates)},
		Warnings: r.Warnings,
		Data:     r,
	}
}

func packView(r *pack.PackResult) ui.Document {
	rows := [][]string{
		{"Skeleton ID", strconv.FormatUint(uint64(r.SkeletonID), 10)},
		{"Animation skeleton ID", strconv.FormatUint(uint64(r.AnimationSkeletonID), 10)},
		{"Tracks", strings.Join(r.Tracks, ", ")},
		{"Bone indices", r.BoneMap},
		{"Payload bytes", strconv.Itoa(r.PayloadBytes)},
		{"Timeline offset", hex(r.TimelineOffset)},
		{"Output", r.OutputPath},
		{"Output bytes", strconv.Itoa(r.OutputBytes)},
		{"Written", strconv.FormatBool(r.Written)},
	}
	return ui.Document{
		Title:    titled(MsgPackTitle, r.DryRun),
		Sections: []ui.Section{{Rows: rows}},
		Warnings: r.Warnings,
		Data:     r,
	}
}

func inspectView(r *inspect.InspectResult) ui.Document {
	doc := ui.Document{Title: MsgInspectTitle, Warnings: r.Warnings, Data: r}

	if s := r.Skeleton; s != nil {
		related := make([]string, len(s.RelatedIDs))
		for i, id := range s.RelatedIDs {
			related[i] = strconv.FormatUint(uint64(id), 10)
		}
		doc.Sections = append(doc.Sections, ui.Section{
			Title:  MsgSkeletonTitle,
			Header: []string{"Field", "Value"},
			Rows: [][]string{
				{"Path", s.Path},
				{"Size", strconv.Itoa(s.Size)},
				{"Magic", s.Magic},
				{"Version", s.Version},
				{"Layout", s.Layout},
				{"Metadata offset", hex(s.MetadataOffset)},
				{"Payload offset", hex(s.PayloadOffset)},
				{"Payload bytes", strconv.Itoa(s.PayloadBytes)},
				{"Payload SHA256", s.PayloadSHA256},
				{"Skeleton ID", strconv.FormatUint(uint64(s.SkeletonID), 10)},
				{"Related IDs", strings.Join(related, " ")},
			},
		})
	}

	if a := r.Animation; a != nil {
		doc.Sections = append(doc.Sections, ui.Section{
			Title:  MsgAnimTitle,
			Header: []string{"Field", "Value"},
			Rows: [][]string{
				{"Path", a.Path},
				{"Size", strconv.Itoa(a.Size)},
				{"Magic", a.Magic},
				{"Version", a.Version},
				{"Skeleton ID", strconv.FormatUint(uint64(a.SkeletonID), 10)},
				{"Info table offset", hex(a.InfoTableOffset)},
				{"Payload offset", hex(a.PayloadOffset)},
				{"Timeline offset", hex(a.TimelineOffset)},
				{"Payload bytes", strconv.Itoa(a.PayloadBytes)},
				{"Payload SHA256", a.PayloadSHA256},
				{"Repackable", strconv.FormatBool(a.Repackable)},
			},
		}, candidatesSection(a.Animations))
	}

	return doc
}
