package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"

	"elevbank/src/bank"
	"elevbank/src/config"
	"elevbank/src/dispatcher"
	"elevbank/src/display"
	"elevbank/src/types"
	"elevbank/src/utils"
)

// Calls replayed by the demo, one every DispatchInterval.
var demoCalls = []int{8, 2, 5, 3, 1, 9, 7, 4}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	envPath := flag.String("env", "", ".env file with ELEVBANK_ overrides")
	strategyName := flag.String("strategy", "", "Dispatch strategy, overrides config")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logPath := flag.String("log-file", "", "Also write logs to this file")
	interactive := flag.Bool("interactive", false, "Read calls from the keyboard")
	demoTimeout := flag.Duration("demo-timeout", time.Minute, "Give up waiting for the demo to finish")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "bad log level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logFile, err := utils.InitLogger(level, *logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	cfg, err := loadConfig(*configPath, *envPath, *strategyName)
	if err != nil {
		slog.Error("Configuration failed", "err", err)
		os.Exit(1)
	}

	stream := display.NewStream(cfg.EventBufferSize)
	elevators, err := bank.New(cfg, nil, stream)
	if err != nil {
		slog.Error("Bank setup failed", "err", err)
		os.Exit(1)
	}
	console := display.NewConsole(os.Stdout, elevators.Name, false)
	go func() {
		for event := range stream.Events() {
			console.OnStatus(event)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	elevators.Start()
	if *interactive {
		runInteractive(ctx, elevators, console, cfg)
	} else {
		runDemo(ctx, elevators, cfg, *demoTimeout)
	}
	elevators.Stop()
	console.Summary(elevators.Statuses())
	if n := stream.Dropped(); n > 0 {
		slog.Warn("Display missed events", "dropped", n)
	}
}

func loadConfig(configPath, envPath, strategyName string) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(envPath); err != nil {
		return cfg, err
	}
	if strategyName != "" {
		cfg.Strategy = strategyName
	}
	err = cfg.Validate()
	return cfg, err
}

func submit(ctx context.Context, elevators *bank.Bank, floor int, hint types.Direction) {
	carID, err := elevators.Submit(ctx, floor, hint)
	if err != nil {
		slog.Warn("Call rejected", "floor", floor, "hint", hint, "err", err)
		return
	}
	slog.Debug("Call accepted", "floor", floor, "car", carID)
}

func runDemo(ctx context.Context, elevators *bank.Bank, cfg config.Config, timeout time.Duration) {
	for _, floor := range demoCalls {
		if floor < cfg.MinFloor || floor > cfg.MaxFloor {
			continue
		}
		go submit(ctx, elevators, floor, types.Idle)
		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.DispatchInterval):
		}
	}

	deadline := time.After(timeout)
	for {
		if allParked(elevators) {
			slog.Info("All calls served")
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			slog.Warn("Demo timed out", "pending", elevators.Pending())
			return
		case <-time.After(cfg.TickInterval):
		}
	}
}

func allParked(elevators *bank.Bank) bool {
	if elevators.Pending() > 0 {
		return false
	}
	for _, status := range elevators.Statuses() {
		if status.Direction != types.Idle {
			return false
		}
	}
	return true
}

// runInteractive maps keys to bank operations:
//   - 0-9 calls floor MinFloor+digit, with the hint chosen by u/d/x
//   - n/e/l/t switch to the nearest, energy, load and eta strategies
//   - s prints the status of every car
//   - q or Ctrl-C quits
func runInteractive(ctx context.Context, elevators *bank.Bank, console *display.Console, cfg config.Config) {
	if err := keyboard.Open(); err != nil {
		slog.Error("Keyboard unavailable", "err", err)
		return
	}
	defer keyboard.Close()

	keys, err := keyboard.GetKeys(10)
	if err != nil {
		slog.Error("Keyboard unavailable", "err", err)
		return
	}
	strategyKeys := map[rune]string{
		'n': dispatcher.NearestName,
		'e': dispatcher.EnergyName,
		'l': dispatcher.LoadName,
		't': dispatcher.EtaName,
	}
	hint := types.Idle
	fmt.Println("0-9: call floor | u/d/x: up/down/no hint | n/e/l/t: strategy | s: status | q: quit")

	for {
		var event keyboard.KeyEvent
		select {
		case <-ctx.Done():
			return
		case event = <-keys:
		}
		if event.Err != nil {
			slog.Error("Keyboard read failed", "err", event.Err)
			return
		}
		char := event.Rune

		switch {
		case event.Key == keyboard.KeyCtrlC || char == 'q':
			return
		case char >= '0' && char <= '9':
			go submit(ctx, elevators, cfg.MinFloor+int(char-'0'), hint)
		case char == 'u':
			hint = types.Up
		case char == 'd':
			hint = types.Down
		case char == 'x':
			hint = types.Idle
		case char == 's':
			console.Summary(elevators.Statuses())
		default:
			name, ok := strategyKeys[char]
			if !ok {
				continue
			}
			strategy, err := dispatcher.ByName(name)
			if err != nil {
				slog.Error("Strategy switch failed", "err", err)
				continue
			}
			elevators.SetStrategy(strategy)
		}
	}
}
