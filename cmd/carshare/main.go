package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/config"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/app"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
	verbose    = flag.Bool("verbose", false, "Print the effective configuration")
)

func main() {
	flag.Parse()
	if *helpFlag || flag.NArg() == 0 {
		config.PrintHelp()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.InitLogger("carshare", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(1)
	}

	if logger.ValidateLogLevel(cfg.Log.Level) {
		log = logger.InitLogger("carshare", cfg.Log.Level)
	}

	if *verbose {
		config.PrintConfig(cfg)
	}

	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	command, args := flag.Arg(0), flag.Args()[1:]
	if err := application.Run(ctx, command, args); err != nil {
		log.Error(ctx, "command failed", err, "command", command)
		os.Exit(1)
	}
}
