// Package editor implements the rich-text document model behind the note form.
//
// A document is a flat list of text blocks (paragraphs and headings), each
// optionally wrapped in a list and/or a blockquote, holding runs of text with
// inline marks (bold, italic, underline, strike, code). The Editor tracks a
// selection, toggles marks and block types, keeps an undo/redo history and
// exports the document as HTML markup on every change.
//
// Positions are (Block, Offset) pairs, 0-based, with Offset counted in runes.
//
// A nil, zero-value or destroyed Editor is inert: commands return false and
// queries return zero values.
package editor
