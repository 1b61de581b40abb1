package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/roman-kulish/wifi-link-budget/cmd/linkbudget/app"
	"github.com/roman-kulish/wifi-link-budget/internal/chart"
)

func main() {
	var logLevel slog.LevelVar
	// stdout may carry the CSV table
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel}))

	var configPath, outputFile, imageFormat, tableOutput string
	flag.StringVar(&configPath, "c", "", "Path to the configuration file")
	flag.StringVar(&outputFile, "o", "", "Path to the chart file, overrides chart.output")
	flag.StringVar(&imageFormat, "f", "", "Chart image format, overrides chart.format. [png, jpeg]")
	flag.StringVar(&tableOutput, "table", "", "Write the sweep table as CSV to a file, or '-' for stdout")
	flag.Parse()

	if configPath == "" {
		flag.Usage()
		logger.Error("no configuration file provided")
		os.Exit(1)
	}

	config, err := app.LoadConfig(configPath)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to load configuration file: %s", err.Error()), slog.String("path", configPath))
		os.Exit(1)
	}

	if outputFile != "" {
		config.Chart.Output = outputFile
	}
	if imageFormat != "" {
		config.Chart.Format = chart.ImageFormat(imageFormat)
	}
	if tableOutput != "" {
		config.Table.Output = tableOutput
	}
	if err = config.Chart.Validate(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	level, _ := config.Settings.Level()
	logLevel.Set(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = app.Run(ctx, config, logger); err != nil {
		logger.Error(err.Error())

		cancel()
		os.Exit(1)
	}
}
