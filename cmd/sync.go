package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"laim/core/config"
	"laim/core/database"
	"laim/core/logger"
	"laim/feature/inventory/models"
	inventorysync "laim/feature/inventory/sync"
	"laim/feature/inventory/sources/librenms"
	"laim/feature/inventory/sources/netdisco"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-shot inventory sync",
	Long:  `Fetches devices from the discovery sources, reconciles them into the inventory database, and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		source, _ := cmd.Flags().GetString("source")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		if err := db.AutoMigrate(&models.InventoryItem{}, &models.SyncLog{}); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		netdiscoSource := netdisco.New(cfg.Netdisco, logg)
		librenmsSource := librenms.New(cfg.LibreNMS, logg)
		svc := inventorysync.NewService(db, netdiscoSource, librenmsSource, logg)

		logg.Info("Starting sync", zap.String("source", source))

		syncLog, result, err := svc.SyncSource(ctx, source)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"log":    syncLog,
				"result": result,
			})
		}

		logg.Info("Sync finished",
			zap.String("status", string(syncLog.Status)),
			zap.Int("devices_found", result.DevicesFound),
			zap.Int("created", result.Created),
			zap.Int("skipped", result.Skipped),
			zap.Int("errors", len(result.Errors)),
		)
		for _, msg := range result.Errors {
			logg.Warn("Sync error", zap.String("detail", msg))
		}

		if syncLog.Status == models.SyncFailed {
			return fmt.Errorf("sync run %d failed", syncLog.ID)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().String("source", inventorysync.SourceAll, "Source to sync: all, librenms or netdisco")
	syncCmd.Flags().Bool("json", false, "Output the run ledger and summary as JSON")
	RootCmd.AddCommand(syncCmd)
}
