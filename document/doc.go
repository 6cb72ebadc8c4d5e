// Package document implements the pure tree model behind the composer.
//
// A document is a forest of block elements (paragraphs and bullet lists)
// whose leaves are marked text runs. Locations are addressed by child-index
// paths, points (path plus rune offset into a text leaf) and ranges. All
// mutation goes through Operation values applied with Apply; the same
// operations drive TransformPath and TransformPoint so callers can keep
// addresses valid across edits.
package document
