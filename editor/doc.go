// Package editor implements the editable document engine: an Editor owns a
// document tree and a selection, mutates them through operations, repairs
// structural invariants with a normalization pass and routes the named
// editing commands through a chain of Handlers that plugins can wrap.
package editor
