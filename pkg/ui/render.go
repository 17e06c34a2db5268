package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
	"github.com/lmcintyre/AnimAssist/pkg/ui/styles"
)

// Section is one titled table of a document.
type Section struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Document is a rendered command result. Data is what structured formats
// serialize; Sections and Warnings are what the table formats show.
type Document struct {
	Title    string
	Sections []Section
	Warnings []string
	Data     interface{}
}

// Renderer writes documents in one resolved format.
type Renderer struct {
	out    io.Writer
	format Format
}

// NewRenderer creates a renderer. The format must already be resolved, see
// Resolve. Text output turns pterm styling off for the whole process.
func NewRenderer(out io.Writer, format Format) *Renderer {
	if format == FormatText {
		pterm.DisableStyling()
	} else {
		pterm.EnableStyling()
	}
	return &Renderer{out: out, format: format}
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes doc.
func (r *Renderer) Render(doc Document) error {
	switch r.format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc.Data, "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON output")
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc.Data); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode YAML output")
		}
		return enc.Close()
	default:
		text, err := r.tables(doc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(r.out, text)
		return err
	}
}

func (r *Renderer) tables(doc Document) (string, error) {
	var sb strings.Builder
	if doc.Title != "" {
		sb.WriteString(r.style("Header", doc.Title))
		sb.WriteString("\n")
		if r.format == FormatText {
			sb.WriteString("\n")
		}
	}

	for i, s := range doc.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		if s.Title != "" {
			sb.WriteString(r.style("Bold", s.Title))
			sb.WriteString("\n")
		}
		data := pterm.TableData{}
		if len(s.Header) > 0 {
			data = append(data, s.Header)
		}
		data = append(data, s.Rows...)
		if len(s.Rows) == 0 {
			sb.WriteString(r.style("Muted", "(none)"))
			sb.WriteString("\n")
			continue
		}
		table, err := pterm.DefaultTable.WithHasHeader(len(s.Header) > 0).WithData(data).Srender()
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInternal, "failed to render table %q", s.Title)
		}
		sb.WriteString(table)
		sb.WriteString("\n")
	}

	if len(doc.Warnings) > 0 {
		sb.WriteString("\n")
		for _, w := range doc.Warnings {
			sb.WriteString(r.Warning(w))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// Warning formats a warning line.
func (r *Renderer) Warning(msg string) string {
	return r.style("Warning", "warning: "+msg)
}

// Success formats a completion line.
func (r *Renderer) Success(msg string) string {
	return r.style("Success", msg)
}

func (r *Renderer) style(name, s string) string {
	if r.format != FormatTerminal {
		return s
	}
	return styles.Render(name, s)
}

// FormatError formats err for display on stderr.
func FormatError(err error, format Format) string {
	msg := "Error: " + err.Error()
	if format != FormatTerminal {
		return msg
	}
	return styles.Render("Error", msg)
}
