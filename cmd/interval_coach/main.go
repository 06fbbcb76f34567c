package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/interval-coach/internal/config"
	"github.com/lowaak/interval-coach/internal/cues"
	"github.com/lowaak/interval-coach/internal/generator"
	"github.com/lowaak/interval-coach/internal/go_func_utils"
	"github.com/lowaak/interval-coach/internal/player"
	"github.com/lowaak/interval-coach/internal/server"
	"github.com/lowaak/interval-coach/internal/trainer"
)

const (
	uiLogBuffer     = 256
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "interval-coach: %v\n", err)
		os.Exit(2)
	}

	fileLog := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}
	defer fileLog.Close()

	if cfg.Server.Enabled {
		logger := log.New(io.MultiWriter(fileLog, os.Stderr), "", log.LstdFlags)
		must("serve HTTP API", runServer(cfg, logger), fileLog)
		return
	}

	must("run terminal UI", runUI(cfg, fileLog), fileLog)
}

func newGenerator(cfg *config.Config, logger *log.Logger) *generator.Generator {
	client := generator.NewChatClient(cfg.Generator.APIKey,
		generator.WithBaseURL(cfg.Generator.BaseURL),
		generator.WithModel(cfg.Generator.Model),
		generator.WithHTTPClient(&http.Client{Timeout: cfg.Generator.Timeout}),
	)
	if cfg.Generator.APIKey == "" {
		logger.Printf("No API key configured - set COACH_API_KEY or load a workout file")
	}
	return generator.New(client, logger)
}

// runServer serves the HTTP API until SIGINT or SIGTERM
func runServer(cfg *config.Config, logger *log.Logger) error {
	if cfg.ConfigFile != "" {
		logger.Printf("Using config %s", cfg.ConfigFile)
	}
	httpSrv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           server.New(newGenerator(cfg, logger), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go_func_utils.SafeGo(logger, func() {
		defer wg.Done()
		logger.Printf("Server: Listening on http://%s", cfg.Server.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	})

	select {
	case err := <-errChan:
		wg.Wait()
		return err
	case <-ctx.Done():
	}

	logger.Printf("Server: Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := httpSrv.Shutdown(shutdownCtx)
	wg.Wait()
	logger.Printf("Server: Stopped")
	return err
}

// runUI runs the terminal UI until the user quits or a signal arrives
func runUI(cfg *config.Config, fileLog io.Writer) error {
	uiLogChan := make(chan string, uiLogBuffer)
	logger := log.New(io.MultiWriter(fileLog, channelWriter(uiLogChan)), "", log.Ltime)
	if cfg.ConfigFile != "" {
		logger.Printf("Using config %s", cfg.ConfigFile)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	app := tview.NewApplication().SetScreen(screen)

	dispatcher := cues.NewDispatcher(cues.NewScreenBell(screen), newVoice(cfg, logger), cfg.Lang(), cues.DefaultTimeout, logger)

	model := trainer.NewUIModel(trainer.Preferences{
		Focus:     cfg.Workout.Focus,
		Equipment: trainer.EquipmentID(cfg.Workout.Equipment),
		Minutes:   cfg.Workout.Minutes,
		Lang:      cfg.Lang(),
		Muted:     cfg.Audio.Mute,
	}, trainer.DefaultStatePath(), logger, uiLogChan)
	manager := trainer.NewWorkoutManager(model, dispatcher, player.RealClock{}, logger)
	controller := trainer.NewUIController(model, manager, newGenerator(cfg, logger), dispatcher, logger)

	view := trainer.NewCursesUIView(logger, app, model)
	base := trainer.NewBaseUIView(trainer.NewBaseUIViewArg{
		UIViewImpl:   view,
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})

	if cfg.Workout.File != "" {
		if err := controller.LoadWorkoutFile(cfg.Workout.File); err != nil {
			logger.Printf("Could not preload %s: %v", cfg.Workout.File, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go_func_utils.SafeGo(logger, func() {
		<-ctx.Done()
		model.RequestCloseApplication()
	})

	runErr := base.Run()

	stop()
	base.Shutdown()
	controller.Shutdown()
	dispatcher.Wait()
	model.Shutdown()
	return runErr
}

// newVoice picks the configured speech command, or whatever the system has
func newVoice(cfg *config.Config, logger *log.Logger) cues.VoiceAnnouncer {
	if cfg.Audio.VoiceCommand != "" {
		voice, err := cues.NewCommandVoice(cfg.Audio.VoiceCommand)
		if err == nil {
			return voice
		}
		logger.Printf("Voice command %q unavailable: %v", cfg.Audio.VoiceCommand, err)
	}
	return cues.DetectVoice()
}

// channelWriter forwards each log line to the UI. Lines are dropped while
// the UI is not keeping up.
type channelWriter chan<- string

func (w channelWriter) Write(p []byte) (int, error) {
	select {
	case w <- string(p):
	default:
	}
	return len(p), nil
}

// osExit skips deferred calls, so must closes logFile itself
var osExit = os.Exit

func must(action string, err error, logFile io.Closer) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "interval-coach: failed to %s: %v\n", action, err)
	if logFile != nil {
		logFile.Close()
	}
	osExit(1)
}
