package classroom

import (
	"strconv"
	"strings"
)

// Matches reports whether the lowercased search term is a substring of ANY
// searchable field: lastWord, the teacher's name, the stringified page and
// unit, lastReading and lastDictation (absent fields never match), dateShow,
// the group name (when a group is set) or any attendee's name. An empty term
// matches every record.
func (c Classroom) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), term)
	}

	if contains(c.LastWord) ||
		contains(c.Teacher.Name) ||
		contains(strconv.Itoa(c.Page)) ||
		contains(strconv.Itoa(c.Unit)) ||
		contains(c.DateShow) {
		return true
	}
	if c.LastReading != "" && contains(c.LastReading) {
		return true
	}
	if c.LastDictation != "" && contains(c.LastDictation) {
		return true
	}
	if c.Group != nil && contains(c.Group.Name) {
		return true
	}
	for _, std := range c.Students {
		if contains(std.Name) {
			return true
		}
	}
	return false
}

// MentionsStudent reports whether any attendee's name contains the given
// name, case-insensitively.
func (c Classroom) MentionsStudent(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, std := range c.Students {
		if strings.Contains(strings.ToLower(std.Name), name) {
			return true
		}
	}
	return false
}

// PresentFor returns the present flag of the attendee with exactly the given
// name, or nil when the record has no such attendee.
func (c Classroom) PresentFor(name string) *bool {
	for _, std := range c.Students {
		if std.Name == name {
			present := std.Present
			return &present
		}
	}
	return nil
}
