package report

import (
	"encoding/json"
	"io"
)

// JSONReporter writes machine-readable command output.
type JSONReporter struct{}

type jsonStatus struct {
	WorkDir   string `json:"workDir"`
	Branch    string `json:"branch"`
	Tagged    bool   `json:"tagged"`
	Tag       string `json:"tag,omitempty"`
	NextStage string `json:"nextStage"`
	NextProd  string `json:"nextProd"`
}

type jsonTagList struct {
	Scope  string   `json:"scope"`
	Latest string   `json:"latest,omitempty"`
	Tags   []string `json:"tags"`
}

// WriteStatus renders the repository status as a JSON document.
func (jr *JSONReporter) WriteStatus(w io.Writer, s *Status) error {
	out := jsonStatus{
		WorkDir:   s.WorkDir,
		Branch:    s.Branch,
		Tagged:    s.Tagged,
		Tag:       s.Tag,
		NextStage: s.NextStage,
		NextProd:  s.NextProd,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteTags renders a tag enumeration as a JSON document. The tags array is
// always present, empty rather than null.
func (jr *JSONReporter) WriteTags(w io.Writer, l *TagList) error {
	out := jsonTagList{
		Scope:  l.Scope,
		Latest: l.Latest,
		Tags:   l.Tags,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
