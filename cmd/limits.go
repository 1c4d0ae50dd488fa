package cmd

import (
	"context"

	"storage-bridge/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	limitMin int64
	limitMax int64
)

// limitsCmd is the parent command for limit rule operations.
var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Manage per-item stock limits",
	Long: `Sets or resets the min/max rule of an item by fingerprint.

Changes made here are written to the database only. A running bridge picks them up on
its next evaluation sweep; use the HTTP API to also notify a connected storage system.`,
}

var limitsSetCmd = &cobra.Command{
	Use:   "set <fingerprint>",
	Short: "Set the min and/or max of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in inventory.LimitInput
		if cmd.Flags().Changed("min") {
			in.Min = &limitMin
		}
		if cmd.Flags().Changed("max") {
			in.Max = &limitMax
		}

		ctx := context.Background()
		app, err := openOffline(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		svc := inventory.NewService(app.store, nil, nil, app.logger)
		limit, err := svc.UpdateLimits(ctx, args[0], in)
		if err != nil {
			return err
		}
		if limit == nil {
			app.logger.Info("Limit removed", zap.String("fingerprint", args[0]))
			return nil
		}

		fields := []zap.Field{zap.String("fingerprint", limit.Fingerprint)}
		if limit.Min != nil {
			fields = append(fields, zap.Int64("min", *limit.Min))
		}
		if limit.Max != nil {
			fields = append(fields, zap.Int64("max", *limit.Max))
		}
		app.logger.Info("Limit saved", fields...)
		return nil
	},
}

var limitsResetCmd = &cobra.Command{
	Use:   "reset <fingerprint>",
	Short: "Remove the rule of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		app, err := openOffline(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		svc := inventory.NewService(app.store, nil, nil, app.logger)
		if err := svc.ResetLimit(ctx, args[0]); err != nil {
			return err
		}
		app.logger.Info("Limit removed", zap.String("fingerprint", args[0]))
		return nil
	},
}

func init() {
	limitsSetCmd.Flags().Int64Var(&limitMin, "min", 0, "Minimum amount to keep in stock")
	limitsSetCmd.Flags().Int64Var(&limitMax, "max", 0, "Maximum amount to keep in stock")

	limitsCmd.AddCommand(limitsSetCmd)
	limitsCmd.AddCommand(limitsResetCmd)
	RootCmd.AddCommand(limitsCmd)
}
