package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"brew-assistant/internal/app/assistant"
	"brew-assistant/internal/app/ticketsub"
	"brew-assistant/internal/common/config"
	"brew-assistant/internal/common/logger"
)

func main() {
	mode := flag.String("mode", "assistant", "assistant | ticket-subscriber")
	port := flag.Int("port", 0, "override http port for the assistant")
	cfgPath := flag.String("config", "", "path to config file")
	flag.Parse()

	lg := logger.New("bootstrap")

	path := *cfgPath
	if path == "" {
		var err error
		if path, err = config.FindConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "no config found: pass --config or create config.yaml")
			os.Exit(2)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "assistant":
		lg.Info("service_started", map[string]any{"service": "assistant", "port": cfg.HTTP.Port})
		if err := assistant.Run(ctx, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "ticket-subscriber":
		if !cfg.RabbitConfigured() {
			fmt.Fprintln(os.Stderr, "ticket-subscriber requires a rabbitmq section in the config")
			os.Exit(2)
		}
		lg.Info("service_started", map[string]any{"service": "ticket-subscriber"})
		if err := ticketsub.Run(ctx, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode must be: assistant | ticket-subscriber")
		os.Exit(2)
	}
}
