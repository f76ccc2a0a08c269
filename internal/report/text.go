package report

import (
	"fmt"
	"io"
)

// TextReporter writes human-readable command output.
type TextReporter struct {
	UseColour bool
}

const (
	colReset = "\033[0m"
	colGreen = "\033[32m"
	colGrey  = "\033[90m"
	colWhite = "\033[37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

// WriteStatus renders the repository status.
func (tr *TextReporter) WriteStatus(w io.Writer, s *Status) error {
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "directory:"), tr.cs(colWhite, s.WorkDir))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "branch:   "), tr.cs(colWhite, s.Branch))

	tag := s.Tag
	if !s.Tagged {
		tag = "(none)"
	}
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "tag:      "), tr.cs(colGreen, tag))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "next stage:"), tr.cs(colWhite, s.NextStage))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "next prod: "), tr.cs(colWhite, s.NextProd))
	return nil
}

// WriteTags renders a tag enumeration, one tag per line.
func (tr *TextReporter) WriteTags(w io.Writer, l *TagList) error {
	if len(l.Tags) == 0 {
		fmt.Fprintf(w, "no %s tags\n", l.Scope)
		return nil
	}
	for _, tag := range l.Tags {
		if tag == l.Latest {
			fmt.Fprintf(w, "%s %s\n", tr.cs(colGreen, tag), tr.cs(colGrey, "(latest)"))
			continue
		}
		fmt.Fprintln(w, tr.cs(colWhite, tag))
	}
	return nil
}
