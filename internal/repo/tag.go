package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Tag is an immutable semantic version of the exact form major.minor.patch.
// The zero value is 0.0.0, the conceptual version of an untagged repository.
type Tag struct {
	major, minor, patch uint64
}

// ZeroTag is the version an untagged repository is treated as having.
var ZeroTag = Tag{}

// ParseTag parses a tag string. Suffix segments appended by upstream tooling
// (e.g. "1.2.3.windows.1") are stripped before validation: everything from
// the first non-numeric dot-separated segment onward is dropped, and what
// remains must be exactly three non-negative integers.
func ParseTag(s string) (Tag, error) {
	if s == "" {
		return Tag{}, &InvalidTagError{Value: s}
	}

	segments := strings.Split(s, ".")
	numeric := segments
	for i, seg := range segments {
		if !isDigits(seg) {
			numeric = segments[:i]
			break
		}
	}
	if len(numeric) != 3 {
		return Tag{}, &InvalidTagError{Value: s}
	}

	v, err := semver.StrictNewVersion(strings.Join(numeric, "."))
	if err != nil {
		return Tag{}, &InvalidTagError{Value: s}
	}
	return Tag{major: v.Major(), minor: v.Minor(), patch: v.Patch()}, nil
}

// IsValidTag reports whether s parses as a tag.
func IsValidTag(s string) bool {
	_, err := ParseTag(s)
	return err == nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (t Tag) Major() uint64 { return t.major }
func (t Tag) Minor() uint64 { return t.minor }
func (t Tag) Patch() uint64 { return t.patch }

// String returns the canonical major.minor.patch form.
func (t Tag) String() string {
	return fmt.Sprintf("%d.%d.%d", t.major, t.minor, t.patch)
}

// NextStage returns the stage-build successor: patch incremented, major and
// minor untouched. Pure computation, nothing is applied to the repository.
func (t Tag) NextStage() Tag {
	v := t.semver().IncPatch()
	return Tag{major: v.Major(), minor: v.Minor(), patch: v.Patch()}
}

// NextProd returns the production successor: minor incremented, patch reset
// to zero, major untouched.
func (t Tag) NextProd() Tag {
	v := t.semver().IncMinor()
	return Tag{major: v.Major(), minor: v.Minor(), patch: v.Patch()}
}

func (t Tag) semver() semver.Version {
	return *semver.New(t.major, t.minor, t.patch, "", "")
}

// LatestTag returns the highest tag in the list by semantic-version order.
// The second return is false for an empty list.
func LatestTag(tags []Tag) (Tag, bool) {
	if len(tags) == 0 {
		return Tag{}, false
	}
	coll := make(semver.Collection, len(tags))
	for i, t := range tags {
		v := t.semver()
		coll[i] = &v
	}
	sort.Sort(coll)
	top := coll[len(coll)-1]
	return Tag{major: top.Major(), minor: top.Minor(), patch: top.Patch()}, true
}
