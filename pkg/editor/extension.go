package editor

// Extension names a capability of the editor. Commands belonging to an
// extension that is not registered are no-ops, and imported markup drops the
// corresponding marks and blocks.
type Extension string

const (
	ExtParagraph   Extension = "paragraph"
	ExtHeading     Extension = "heading"
	ExtBold        Extension = "bold"
	ExtItalic      Extension = "italic"
	ExtStrike      Extension = "strike"
	ExtCode        Extension = "code"
	ExtBulletList  Extension = "bulletList"
	ExtOrderedList Extension = "orderedList"
	ExtListItem    Extension = "listItem"
	ExtBlockquote  Extension = "blockquote"
	ExtHistory     Extension = "history"
	ExtUnderline   Extension = "underline"
)

// StarterKit returns the default bundle of formatting extensions.
// Underline is not part of it.
func StarterKit() []Extension {
	return []Extension{
		ExtParagraph,
		ExtHeading,
		ExtBold,
		ExtItalic,
		ExtStrike,
		ExtCode,
		ExtBulletList,
		ExtOrderedList,
		ExtListItem,
		ExtBlockquote,
		ExtHistory,
	}
}

var markExtensions = map[Mark]Extension{
	Bold:      ExtBold,
	Italic:    ExtItalic,
	Underline: ExtUnderline,
	Strike:    ExtStrike,
	Code:      ExtCode,
}

type extensionSet map[Extension]bool

func newExtensionSet(exts []Extension) extensionSet {
	set := make(extensionSet, len(exts))
	for _, ext := range exts {
		set[ext] = true
	}
	return set
}

func (s extensionSet) mark(m Mark) bool { return s[markExtensions[m]] }

func (s extensionSet) list(t ListType) bool {
	switch t {
	case BulletList:
		return s[ExtBulletList]
	case OrderedList:
		return s[ExtOrderedList]
	}
	return false
}
