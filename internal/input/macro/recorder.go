package macro

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mrdivyansh/lexical/internal/dispatcher/command"
	"github.com/mrdivyansh/lexical/internal/input/key"
)

// Recorder errors.
var (
	ErrAlreadyRecording = errors.New("macro: already recording")
	ErrInvalidRegister  = errors.New("macro: invalid register name")
)

// Recorder stores key chords in named registers. It implements
// input.Hook.
type Recorder struct {
	mu         sync.Mutex
	recording  bool
	playing    bool
	register   string
	chords     []string
	registers  map[string][]string
	lastPlayed string
}

// NewRecorder creates a recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{registers: make(map[string][]string)}
}

// StartRecording begins recording into register.
func (r *Recorder) StartRecording(register string) error {
	if register == "" {
		return ErrInvalidRegister
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return fmt.Errorf("%w to %q", ErrAlreadyRecording, r.register)
	}
	r.recording = true
	r.register = register
	r.chords = nil
	return nil
}

// StopRecording ends the recording and stores it. An empty recording
// leaves the register unchanged. It returns the recorded chords.
func (r *Recorder) StopRecording() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return nil
	}
	r.recording = false
	out := r.chords
	if len(out) > 0 {
		r.registers[r.register] = append([]string(nil), out...)
	}
	r.chords = nil
	return out
}

// IsRecording reports whether a recording is in progress.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Record appends ev to the current recording. Events replayed by a Player
// are not recorded.
func (r *Recorder) Record(ev *key.Event) {
	if ev == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording && !r.playing {
		r.chords = append(r.chords, ev.String())
	}
}

// PreKeyEvent records ev and lets it through.
func (r *Recorder) PreKeyEvent(ev *key.Event) bool {
	r.Record(ev)
	return false
}

// PostKeyEvent does nothing.
func (r *Recorder) PostKeyEvent(*key.Event, *command.Command, bool) {}

// Get returns a copy of a register's chords.
func (r *Recorder) Get(register string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.registers[register]...)
}

// Set replaces a register's contents after checking every chord parses.
func (r *Recorder) Set(register string, chords []string) error {
	if register == "" {
		return ErrInvalidRegister
	}
	for _, c := range chords {
		if _, err := key.Parse(c); err != nil {
			return fmt.Errorf("macro %q: %w", register, err)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers[register] = append([]string(nil), chords...)
	return nil
}

// Clear empties a register.
func (r *Recorder) Clear(register string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.registers, register)
}

// Registers returns the non-empty register names, sorted.
func (r *Recorder) Registers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.registers))
	for name, chords := range r.registers {
		if len(chords) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// LastPlayed returns the register most recently played.
func (r *Recorder) LastPlayed() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}

func (r *Recorder) setPlaying(register string, playing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playing = playing
	if playing {
		r.lastPlayed = register
	}
}
