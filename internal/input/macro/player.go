package macro

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrdivyansh/lexical/internal/input/key"
)

// ErrEmptyRegister is returned when playing a register with no chords.
var ErrEmptyRegister = errors.New("macro: register is empty")

// KeyHandler receives replayed events. *input.Handler implements it.
type KeyHandler interface {
	HandleKey(ev *key.Event) (bool, error)
}

// Player replays registers.
type Player struct {
	recorder *Recorder
}

// NewPlayer creates a player reading registers from recorder.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{recorder: recorder}
}

// Play replays register count times. It stops at the first handler error.
func (p *Player) Play(register string, count int, h KeyHandler) error {
	return p.PlayWithContext(context.Background(), register, count, h)
}

// PlayLast replays the most recently played register.
func (p *Player) PlayLast(count int, h KeyHandler) error {
	return p.Play(p.recorder.LastPlayed(), count, h)
}

// PlayWithContext is Play with cancellation between events.
func (p *Player) PlayWithContext(ctx context.Context, register string, count int, h KeyHandler) error {
	chords := p.recorder.Get(register)
	if len(chords) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyRegister, register)
	}
	if count < 1 {
		count = 1
	}

	p.recorder.setPlaying(register, true)
	defer p.recorder.setPlaying(register, false)

	for i := 0; i < count; i++ {
		for _, chord := range chords {
			if err := ctx.Err(); err != nil {
				return err
			}
			ev, err := key.Parse(chord)
			if err != nil {
				return fmt.Errorf("macro %q: %w", register, err)
			}
			if _, err := h.HandleKey(ev); err != nil {
				return fmt.Errorf("macro %q: %s: %w", register, chord, err)
			}
		}
	}
	return nil
}
