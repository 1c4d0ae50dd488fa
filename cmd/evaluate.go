package cmd

import (
	"context"
	"encoding/json"
	"os"

	"storage-bridge/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// evaluateCmd runs one limit sweep against the stored inventory.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate every limit rule and print the decisions",
	Long:  `Evaluates every item that has a rule and prints the resulting decisions as JSON. Nothing is sent to the storage system.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := openOffline(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		decisions, err := inventory.NewService(app.store, nil, nil, app.logger).Sweep(ctx)
		if err != nil {
			return err
		}
		app.logger.Info("Evaluation finished", zap.Int("decisions", len(decisions)))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decisions)
	},
}

func init() {
	RootCmd.AddCommand(evaluateCmd)
}
