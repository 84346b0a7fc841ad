// Package macro records key chords into named registers and replays them
// through an input handler.
//
// A Recorder is installed as an input hook. Between StartRecording and
// StopRecording every key event reaching the handler is stored in canonical
// chord form, so a macro can be saved to disk and edited by hand. A Player
// feeds a register back through the handler, which resolves each chord
// against the current keymap.
package macro
