// Package report provides reporting functionality for relkit command output.
package report

import "io"

// Reporter writes command output in one presentation format.
type Reporter interface {
	WriteStatus(w io.Writer, s *Status) error
	WriteTags(w io.Writer, l *TagList) error
}

// Status describes the repository as seen by the tag engine.
type Status struct {
	WorkDir   string
	Branch    string
	Tagged    bool
	Tag       string
	NextStage string
	NextProd  string
}

// TagList holds an enumeration of version tags in repository-reported order.
type TagList struct {
	Scope  string // "local" or "remote"
	Latest string // empty when no tags exist
	Tags   []string
}
