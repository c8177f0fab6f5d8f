package editor

import "strings"

// Mark is an inline formatting attribute.
type Mark uint8

const (
	Bold Mark = 1 << iota
	Italic
	Underline
	Strike
	Code
)

// markOrder is the nesting order used when serializing (outermost first).
var markOrder = []Mark{Bold, Italic, Underline, Strike, Code}

var markNames = map[Mark]string{
	Bold:      "bold",
	Italic:    "italic",
	Underline: "underline",
	Strike:    "strike",
	Code:      "code",
}

var markTags = map[Mark]string{
	Bold:      "strong",
	Italic:    "em",
	Underline: "u",
	Strike:    "s",
	Code:      "code",
}

func (m Mark) String() string {
	if name, ok := markNames[m]; ok {
		return name
	}
	return "unknown"
}

// markByName resolves the names accepted by IsActive.
func markByName(name string) (Mark, bool) {
	for m, n := range markNames {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

// MarkSet is a set of marks.
type MarkSet uint8

// Has reports whether m is in the set.
func (s MarkSet) Has(m Mark) bool { return s&MarkSet(m) != 0 }

// Add returns the set with m added.
// Code excludes every other mark: adding Code drops the rest, and no other
// mark can join a set that holds Code.
func (s MarkSet) Add(m Mark) MarkSet {
	if m == Code {
		return MarkSet(Code)
	}
	if s.Has(Code) {
		return s
	}
	return s | MarkSet(m)
}

// excludes reports whether m cannot be added to the set.
func (s MarkSet) excludes(m Mark) bool { return m != Code && s.Has(Code) }

// Remove returns the set without m.
func (s MarkSet) Remove(m Mark) MarkSet { return s &^ MarkSet(m) }

// Marks lists the set in serialization order.
func (s MarkSet) Marks() []Mark {
	var out []Mark
	for _, m := range markOrder {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s MarkSet) String() string {
	names := make([]string, 0, len(markOrder))
	for _, m := range s.Marks() {
		names = append(names, m.String())
	}
	return strings.Join(names, ",")
}
