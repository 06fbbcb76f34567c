// Package cues plays the countdown beeps and spoken announcements. Every
// adapter is best effort: failures are logged and never reach the player.
package cues

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// ToneGenerator produces a short audible beep
type ToneGenerator interface {
	Beep(ctx context.Context) error
}

// VoiceAnnouncer speaks a line of text
type VoiceAnnouncer interface {
	Announce(ctx context.Context, text string) error
}

// Beeper rings a bell by itself, as tcell.Screen does
type Beeper interface {
	Beep() error
}

// ScreenBell rings the terminal bell through the screen that owns the
// terminal, so the bell never interleaves with a redraw
type ScreenBell struct {
	mu     sync.Mutex
	screen Beeper
}

func NewScreenBell(screen Beeper) *ScreenBell {
	if screen == nil {
		panic("ScreenBell: screen cannot be nil")
	}
	return &ScreenBell{screen: screen}
}

func (b *ScreenBell) Beep(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.screen.Beep(); err != nil {
		return fmt.Errorf("ringing bell: %w", err)
	}
	return nil
}

// ErrNoVoiceCommand is returned when no speech command is configured
var ErrNoVoiceCommand = errors.New("no voice command configured")

// CommandVoice speaks by running an external program such as say, espeak or
// spd-say with the text as its last argument.
type CommandVoice struct {
	name string
	args []string

	// A new announcement interrupts the one still speaking
	mu       sync.Mutex
	seq      uint64
	cancelFn context.CancelFunc
}

// NewCommandVoice parses a command line like "espeak -s 160"
func NewCommandVoice(commandLine string) (*CommandVoice, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, ErrNoVoiceCommand
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("voice command %q: %w", fields[0], err)
	}
	return &CommandVoice{name: fields[0], args: fields[1:]}, nil
}

func (v *CommandVoice) Announce(ctx context.Context, text string) error {
	runCtx, cancel := context.WithCancel(ctx)
	v.mu.Lock()
	if v.cancelFn != nil {
		v.cancelFn()
	}
	v.seq++
	seq := v.seq
	v.cancelFn = cancel
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		if v.seq == seq {
			v.cancelFn = nil
		}
		v.mu.Unlock()
		cancel()
	}()

	args := append(append([]string(nil), v.args...), text)
	out, err := exec.CommandContext(runCtx, v.name, args...).CombinedOutput()
	if err != nil {
		if runCtx.Err() != nil && ctx.Err() == nil {
			// Interrupted by a newer announcement
			return nil
		}
		return fmt.Errorf("running %s: %w (%s)", v.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Silent satisfies both adapters and does nothing
type Silent struct{}

func (Silent) Beep(context.Context) error { return nil }

func (Silent) Announce(context.Context, string) error { return nil }

// DefaultVoiceCommands are tried in order when no command is configured
var DefaultVoiceCommands = []string{"say", "spd-say", "espeak"}

// DetectVoice returns the first available default speech command, or Silent
func DetectVoice() VoiceAnnouncer {
	for _, name := range DefaultVoiceCommands {
		if v, err := NewCommandVoice(name); err == nil {
			return v
		}
	}
	return Silent{}
}
