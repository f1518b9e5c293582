package main

import (
	"encoding/json"
	"fmt"
	"journal/internal/export"
	"journal/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var opts export.Options

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON snapshot of all tags and entries to storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, repo, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logrus.WithError(err).Warn("failed to close repository")
				}
			}()

			store, err := storage.NewStorage(cfg)
			if err != nil {
				return fmt.Errorf("initialise storage: %w", err)
			}

			result, err := export.NewExporter(repo, store, cfg.ExportPrefix).Export(ctx, opts)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "snapshot file name (default journal-<unix>)")
	cmd.Flags().BoolVar(&opts.SkipIfExists, "skip-existing", false, "keep an existing snapshot with the same key")
	return cmd
}
