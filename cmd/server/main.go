package main

import (
	"context"
	"journal/internal/config"
	"journal/internal/model"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "journal",
		Short:         "Mood, journal and gratitude entries with tags",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

// bootstrap 解析配置、初始化日志与存储库，并写入默认标签
func bootstrap(ctx context.Context) (config.Config, model.Repository, error) {
	cfg, err := config.ParseConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	config.ConfigureLogger(cfg)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		return config.Config{}, nil, err
	}

	if err := model.SeedDefaultTags(ctx, repo, cfg.SeedTags); err != nil {
		logrus.WithError(err).Warn("failed to seed default tags")
	}
	return cfg, repo, nil
}
