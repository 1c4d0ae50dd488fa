package cmd

import (
	"context"
	"fmt"

	"storage-bridge/core/storage"
	"storage-bridge/feature/assets"
	"storage-bridge/feature/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// assetsCmd is the parent command for asset catalog operations.
var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage item and mod display names",
}

var assetsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the asset catalog from object storage",
	Long:  `Replaces the item and mod display names with the catalog object (storage.bucket / assets.catalog_object).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := openOffline(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		client, err := storage.NewClient(app.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}

		index := search.NewIndex(app.store, app.logger)
		svc := assets.NewService(client, app.cfg.Storage.Bucket, app.cfg.Assets, app.store, index, app.logger)

		report, err := svc.Import(ctx)
		if err != nil {
			return err
		}
		app.logger.Info("Searchable items", zap.Int("count", index.Size()), zap.Int("items", report.Items))
		return nil
	},
}

var assetsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the catalog object exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := openOffline(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		client, err := storage.NewClient(app.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}

		status, err := assets.NewService(client, app.cfg.Storage.Bucket, app.cfg.Assets, app.store, nil, app.logger).Status(ctx)
		if err != nil {
			return err
		}
		app.logger.Info("Asset catalog status",
			zap.String("bucket", status.Bucket),
			zap.String("object", status.Object),
			zap.Bool("bucket_exists", status.BucketExists),
			zap.Bool("object_exists", status.ObjectExists))
		return nil
	},
}

func init() {
	assetsCmd.AddCommand(assetsImportCmd)
	assetsCmd.AddCommand(assetsStatusCmd)
	RootCmd.AddCommand(assetsCmd)
}
