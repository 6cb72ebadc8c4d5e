// Package composer is the command surface hosts drive: it owns an editor
// configured with the composer extensions, maps key chords to commands,
// derives UI state after every change and handles submission.
//
// A Composer is owned by one goroutine. Work that completes elsewhere, such
// as a pending submit, is posted back through Options.Schedule, or, without
// one, queued until the owner's next command or Flush.
package composer
