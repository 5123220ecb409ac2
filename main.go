package main

import (
	"flag"
	"log/slog"
	"os"

	"inkpad/internal/ai"
	"inkpad/internal/config"
	"inkpad/internal/export"
	"inkpad/internal/ink"
	"inkpad/internal/state"
	"inkpad/internal/ui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the config file")
	notebookPath := flag.String("notebook", config.DefaultNotebookPath(), "path to the notebook file")
	exportDir := flag.String("export-dir", "", "write every note to this directory and exit")
	density := flag.Float64("density", 2, "pixels per unit for -export-dir rasters")
	flag.Parse()

	cfg, cfgErr := config.Load(*configPath)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)
	ink.SetLogger(logger)
	state.SetLogger(logger)
	ai.SetLogger(logger)
	ui.SetLogger(logger)
	if cfgErr != nil {
		slog.Warn("using default config", slog.String("path", *configPath), slog.Any("error", cfgErr))
	}

	nb := state.NewNotebook()
	if err := nb.LoadFile(*notebookPath); err != nil {
		slog.Error("could not load notebook", slog.String("path", *notebookPath), slog.Any("error", err))
		os.Exit(1)
	}

	if *exportDir != "" {
		if _, err := export.Notebook(*exportDir, nb, *density); err != nil {
			slog.Error("export failed", slog.String("dir", *exportDir), slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	if cfg.AI.APIKey == "" {
		slog.Warn("no API key, transcription and summaries are unavailable", slog.String("env", config.EnvAPIKey))
	}
	assistant := ai.NewAssistant(ai.NewAnthropicClient(cfg.ClientOptions()))

	slog.Info("starting inkpad", slog.String("notebook", *notebookPath))
	ui.RunApp(ui.Options{
		Config:       cfg,
		Notebook:     nb,
		Assistant:    assistant,
		NotebookPath: *notebookPath,
	})
}
