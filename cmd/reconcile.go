package cmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"storage-bridge/core/reconcile"
	"storage-bridge/feature/bridge"
	"storage-bridge/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	snapshotFile    string
	dryRunReconcile bool
	yesConfirm      bool
)

// reconcileCmd applies a snapshot file as one reconciliation cycle.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the stored inventory against a snapshot file",
	Long: `Applies a complete snapshot as one reconciliation cycle, without a live storage system.

The file holds either a JSON array of items or a storedItems message:
  [{"id":"minecraft:stone","amount":64,"fingerprint":"…","isCraftable":true}]

Items missing from the snapshot are deleted, so the command asks for confirmation
unless --yes or --dry-run is given. No commands are sent; limit violations are
only reported.

Examples:
  # Show what would change
  reconcile --file snapshot.json --dry-run

  # Apply without prompting
  reconcile --file snapshot.json --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVarP(&snapshotFile, "file", "f", "", "Snapshot JSON file")
	reconcileCmd.Flags().BoolVar(&dryRunReconcile, "dry-run", false, "Plan only, write nothing")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	_ = reconcileCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	snap, dropped, err := readSnapshot(snapshotFile)
	if err != nil {
		return err
	}

	app, err := openOffline(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	l := app.logger

	if dropped > 0 {
		l.Warn("Dropped malformed snapshot entries", zap.Int("dropped", dropped))
	}

	// Step 1: Plan (always runs)
	reconciler := inventory.NewReconciler(app.store)
	planned, err := reconciler.Plan(ctx, snap)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printResult(l, "Reconciliation plan", planned)

	if dryRunReconcile {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if planned.Empty() {
		l.Info("Inventory already matches the snapshot.")
		return nil
	}

	// Step 2: Confirm deletes
	if len(planned.Removed) > 0 && !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	// Step 3: Apply
	out, err := reconciler.Reconcile(ctx, snap)
	if err != nil {
		return err
	}
	printResult(l, "Reconciliation applied", out.Result)

	for _, d := range inventory.EvaluateAll(out.Changed) {
		l.Warn("Limit violation",
			zap.String("fingerprint", d.Fingerprint),
			zap.String("item_id", d.ItemID),
			zap.String("action", string(d.Action)),
			zap.Int64("amount", d.Amount),
			zap.Int64("current", d.Current))
	}
	return nil
}

// readSnapshot decodes a snapshot file through the same decoder the socket uses.
func readSnapshot(path string) (inventory.Snapshot, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read snapshot: %w", err)
	}

	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		data = append(append([]byte(`{"type":"storedItems","data":`), data...), '}')
	}

	in, err := bridge.Decode(data)
	if err != nil {
		return nil, 0, err
	}
	if in.Type != bridge.TypeStoredItems {
		return nil, 0, fmt.Errorf("%w: expected %s, got %s", bridge.ErrMalformedMessage, bridge.TypeStoredItems, in.Type)
	}
	return in.Records, in.Dropped, nil
}

// printResult logs the counts of a reconciliation result.
func printResult(l *zap.Logger, msg string, r *reconcile.Result) {
	l.Info(msg,
		zap.Int("inserted", len(r.Inserted)),
		zap.Int("updated", len(r.Updated)),
		zap.Int("removed", len(r.Removed)),
		zap.Int("unchanged", len(r.Unchanged)),
	)

	const maxShow = 5
	for i, fp := range r.Removed {
		if i == maxShow {
			l.Info("Additional removals not shown", zap.Int("count", len(r.Removed)-maxShow))
			break
		}
		l.Info("Removal", zap.String("fingerprint", fp))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Items missing from the snapshot will be deleted. Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
