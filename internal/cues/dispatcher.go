package cues

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/interval-coach/internal/go_func_utils"
	"github.com/lowaak/interval-coach/internal/i18n"
)

// DefaultTimeout bounds a single tone or announcement
const DefaultTimeout = 5 * time.Second

// Dispatcher runs cue adapters fire-and-forget on their own goroutines
type Dispatcher struct {
	tone    ToneGenerator
	voice   VoiceAnnouncer
	timeout time.Duration
	logger  *log.Logger

	mu   sync.RWMutex
	lang i18n.Lang

	// wg tracks in-flight cues so callers can wait before exit
	wg sync.WaitGroup
}

func NewDispatcher(tone ToneGenerator, voice VoiceAnnouncer, lang i18n.Lang, timeout time.Duration, logger *log.Logger) *Dispatcher {
	if tone == nil {
		panic("CueDispatcher: tone cannot be nil")
	}
	if voice == nil {
		panic("CueDispatcher: voice cannot be nil")
	}
	if logger == nil {
		panic("CueDispatcher: logger cannot be nil")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{tone: tone, voice: voice, lang: lang, timeout: timeout, logger: logger}
}

// SetLanguage changes the language of future announcements
func (d *Dispatcher) SetLanguage(lang i18n.Lang) {
	d.mu.Lock()
	d.lang = lang
	d.mu.Unlock()
}

func (d *Dispatcher) Tone() {
	d.run("tone", func(ctx context.Context) error {
		return d.tone.Beep(ctx)
	})
}

func (d *Dispatcher) Announce(exercise string) {
	d.mu.RLock()
	text := i18n.Translate(d.lang, "playerAnnounce", i18n.Params{"exercise": exercise})
	d.mu.RUnlock()

	d.run("announce", func(ctx context.Context) error {
		return d.voice.Announce(ctx, text)
	})
}

// Wait blocks until every in-flight cue has returned
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(name string, fn func(ctx context.Context) error) {
	d.wg.Add(1)
	go_func_utils.SafeGoRecover(d.logger, func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			d.logger.Printf("CueDispatcher: %s failed: %v", name, err)
		}
	})
}
