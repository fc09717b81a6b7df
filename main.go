/*
Demo driver for the batching engine: builds a small scene through the
testbed package and runs a bounded frame loop against it.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fpicone/lumina/engine/config"
	"github.com/fpicone/lumina/engine/core"
	"github.com/fpicone/lumina/testbed"
)

const frameCount = 600

func main() {
	configPath := "lumina.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		core.LogWarn("%s; continuing with defaults", err.Error())
		cfg = config.Default()
	}
	if level, err := log.ParseLevel(cfg.Application.LogLevel); err == nil {
		core.SetLogLevel(level)
	}

	if err := core.MetricsInitialize(); err != nil {
		panic(err)
	}

	scene, err := testbed.NewScene(cfg)
	if err != nil {
		panic(err)
	}
	if err := scene.Setup(); err != nil {
		panic(err)
	}

	// Re-read the config while running; a tuning change invalidates every
	// merged mesh.
	watcher, err := config.NewWatcher(configPath, func(updated *config.Config) {
		scene.BatchSystem().MarkAllDirty()
	})
	if err == nil {
		if err := watcher.Start(); err != nil {
			core.LogWarn("config watcher not started: %s", err.Error())
		} else {
			defer watcher.Close()
		}
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	clock := core.NewClock()
	running := true
	for frame := 0; frame < frameCount && running; frame++ {
		clock.Start()

		scene.Frame(frame)

		select {
		case <-sigCh:
			running = false
		default:
		}

		clock.Update()
		core.MetricsUpdate(clock.ElapsedSeconds())

		if frame%100 == 0 {
			active, merged, issued, without := core.MetricsBatching()
			core.LogInfo("frame %d: %d active batches, %d renderables merged, %d draw calls issued (%d without batching)",
				frame, active, merged, issued, without)
		}

		time.Sleep(time.Millisecond)
	}

	if err := scene.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err.Error())
	}
	core.LogInfo("done")
}
