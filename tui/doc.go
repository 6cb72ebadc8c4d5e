// Package tui provides a Bubble Tea component that hosts a composer in a
// terminal.
//
// The package translates key messages into composer key events, renders the
// rich-text document with marks, links, bullets, selection and cursor, and
// keeps the composer's derived state current by running its scheduled
// callbacks on the Bubble Tea goroutine.
package tui
