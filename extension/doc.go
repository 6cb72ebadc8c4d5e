// Package extension holds the behavior modules layered over the editor core.
//
// Each module is an editor.Plugin: it receives the handlers below it and
// returns overrides for the operations it cares about, calling next for
// everything else. Plugins builds the stack the composer installs.
package extension
