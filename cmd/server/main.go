package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/config"
	"github.com/jengzang/habitminer/internal/logging"
	"github.com/jengzang/habitminer/internal/naming"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "habitminer",
		Short:        "Learn recurring place habits from location visits",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $"+config.ConfigFileEnv+")")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(learnCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newNamer picks the OpenAI namer when an API key is configured, otherwise templates
func newNamer(cfg config.NamingConfig, offline bool, logger *zap.Logger) (habit.Namer, error) {
	if offline || cfg.Provider != "openai" || cfg.APIKey == "" {
		if !offline && cfg.Provider == "openai" {
			logger.Warn("no naming API key configured, using template names")
		}
		return naming.TemplateNamer{}, nil
	}
	return naming.NewOpenAINamer(naming.OpenAIConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
		MaxWords:    cfg.MaxWords,
	}, logger.Named("naming"))
}
