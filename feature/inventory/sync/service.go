package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"laim/feature/inventory/classify"
	"laim/feature/inventory/merge"
	"laim/feature/inventory/models"
	"laim/feature/inventory/sources"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Source selectors accepted by the sync operations and recorded in the ledger.
const (
	SourceAll      = "all"
	SourceLibreNMS = "librenms"
	SourceNetdisco = "netdisco"
)

// Result summarizes one sync run for the caller.
type Result struct {
	DevicesFound int      `json:"devices_found"`
	Created      int      `json:"created"`
	Updated      int      `json:"updated"`
	Skipped      int      `json:"skipped"`
	Errors       []string `json:"errors"`
}

// Service reconciles discovered devices against the inventory store.
//
// A run creates a ledger row before any network I/O, fetches from the
// requested sources, merges when both are involved, and then processes
// devices strictly sequentially: each device either creates a missing
// inventory item or is skipped because a matching item already exists. Sync
// never updates an existing item, so manual edits survive every run.
type Service struct {
	db       *gorm.DB
	netdisco sources.Source
	librenms sources.Source
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a sync service with explicitly owned source instances.
func NewService(db *gorm.DB, netdisco, librenms sources.Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:       db,
		netdisco: netdisco,
		librenms: librenms,
		logger:   logger,
		now:      time.Now,
	}
}

// SyncAll fetches from both sources, merges the two views (LibreNMS winning
// conflicts), and reconciles the unified set. The returned error is non-nil
// only when the run ledger itself cannot be written; every expected failure
// mode still yields a SyncLog/Result pair.
func (s *Service) SyncAll(ctx context.Context) (*models.SyncLog, *Result, error) {
	defer s.netdisco.Close()
	defer s.librenms.Close()

	return s.run(ctx, SourceAll, func(ctx context.Context) ([]models.Device, error) {
		s.logger.Info("Fetching devices from Netdisco")
		netdiscoDevices, err := s.netdisco.GetDevices(ctx)
		if err != nil {
			return nil, fmt.Errorf("netdisco: %w", err)
		}

		s.logger.Info("Fetching devices from LibreNMS")
		librenmsDevices, err := s.librenms.GetDevices(ctx)
		if err != nil {
			return nil, fmt.Errorf("librenms: %w", err)
		}

		merged := merge.Merge(netdiscoDevices, librenmsDevices)
		s.logger.Info("Merged unique devices", zap.Int("count", len(merged)))

		// Sort keys so processing (and error ordering) is deterministic.
		keys := make([]string, 0, len(merged))
		for key := range merged {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		devices := make([]models.Device, 0, len(merged))
		for _, key := range keys {
			devices = append(devices, merged[key])
		}
		return devices, nil
	})
}

// SyncNetdisco reconciles devices from Netdisco only.
func (s *Service) SyncNetdisco(ctx context.Context) (*models.SyncLog, *Result, error) {
	defer s.netdisco.Close()

	return s.run(ctx, SourceNetdisco, func(ctx context.Context) ([]models.Device, error) {
		s.logger.Info("Fetching devices from Netdisco")
		return s.netdisco.GetDevices(ctx)
	})
}

// SyncLibreNMS reconciles devices from LibreNMS only.
func (s *Service) SyncLibreNMS(ctx context.Context) (*models.SyncLog, *Result, error) {
	defer s.librenms.Close()

	return s.run(ctx, SourceLibreNMS, func(ctx context.Context) ([]models.Device, error) {
		s.logger.Info("Fetching devices from LibreNMS")
		return s.librenms.GetDevices(ctx)
	})
}

// SyncSource dispatches to the operation matching the source selector.
func (s *Service) SyncSource(ctx context.Context, source string) (*models.SyncLog, *Result, error) {
	switch source {
	case SourceAll:
		return s.SyncAll(ctx)
	case SourceNetdisco:
		return s.SyncNetdisco(ctx)
	case SourceLibreNMS:
		return s.SyncLibreNMS(ctx)
	default:
		return nil, nil, fmt.Errorf("unknown sync source %q", source)
	}
}

// RecentLogs returns the most recent ledger entries, newest first.
func (s *Service) RecentLogs(ctx context.Context, limit int) ([]models.SyncLog, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var logs []models.SyncLog
	err := s.db.WithContext(ctx).
		Order("started_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read sync logs: %w", err)
	}
	return logs, nil
}

// Run executes a full sync and logs its summary. It satisfies the
// scheduler's Runner interface.
func (s *Service) Run(ctx context.Context) error {
	syncLog, result, err := s.SyncAll(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("Scheduled sync completed",
		zap.String("status", string(syncLog.Status)),
		zap.Int("devices_found", result.DevicesFound),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return nil
}

// run executes the shared state machine: RUNNING -> COMPLETED | FAILED.
func (s *Service) run(ctx context.Context, source string, fetch func(context.Context) ([]models.Device, error)) (*models.SyncLog, *Result, error) {
	syncLog, err := s.createSyncLog(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	result := &Result{Errors: []string{}}

	devices, err := fetch(ctx)
	if err != nil {
		errMsg := fmt.Sprintf("%s sync failed: %v", source, err)
		result.Errors = append(result.Errors, errMsg)
		s.logger.Error("Sync run failed", zap.String("source", source), zap.Error(err))

		if err := s.completeSyncLog(ctx, syncLog, result, models.SyncFailed); err != nil {
			return syncLog, result, err
		}
		return syncLog, result, nil
	}

	result.DevicesFound = len(devices)
	for _, device := range devices {
		s.reconcileDevice(ctx, device, result)
	}

	if err := s.completeSyncLog(ctx, syncLog, result, models.SyncCompleted); err != nil {
		return syncLog, result, err
	}
	return syncLog, result, nil
}

// reconcileDevice creates the inventory item for one device, or skips it.
// Each device runs in its own transaction so one bad record never aborts the
// run; its error is recorded and processing continues.
func (s *Service) reconcileDevice(ctx context.Context, device models.Device, result *Result) {
	serial := deriveIdentity(device)
	if serial == "" {
		result.Skipped++
		s.logger.Debug("Skipped device without identifiers", zap.String("device", device.Label()))
		return
	}

	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findExisting(tx, device, serial)
		if err != nil {
			return err
		}
		if existing != nil {
			// Anti-clobber policy: existing items are never overwritten.
			return nil
		}

		now := s.now()
		item := models.InventoryItem{
			Hostname:        firstNonEmpty(device.Hostname, device.IPAddress, "Unknown"),
			SerialNumber:    serial,
			AssetTag:        generateAssetTag(),
			ItemType:        classify.Detect(device.Model, device.Vendor, device.Hostname),
			RoomLocation:    "Synced", // default room for auto-discovered devices
			SubLocation:     device.Location,
			IsActive:        true,
			Source:          device.Source,
			SourceID:        device.SourceID,
			LastSyncedAt:    &now,
			FirmwareVersion: device.FirmwareVersion,
			IPAddress:       device.IPAddress,
			Model:           device.Model,
			Vendor:          device.Vendor,
		}
		if device.MACAddress != "" {
			mac := device.MACAddress
			item.MACAddress = &mac
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		errMsg := fmt.Sprintf("Error processing %s: %v", device.Label(), err)
		result.Errors = append(result.Errors, errMsg)
		s.logger.Error("Failed to reconcile device", zap.String("device", device.Label()), zap.Error(err))
		return
	}

	if created {
		result.Created++
		s.logger.Debug("Created device", zap.String("device", device.Label()))
	} else {
		result.Skipped++
		s.logger.Debug("Skipped existing device", zap.String("device", device.Label()))
	}
}

// findExisting looks up an inventory item by the derived identity serial,
// then falls back to matching the device's own serial or MAC in case the
// identity was computed differently on an earlier run.
func findExisting(tx *gorm.DB, device models.Device, serial string) (*models.InventoryItem, error) {
	var item models.InventoryItem

	err := tx.Where("serial_number = ?", serial).First(&item).Error
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var clauses []string
	var args []any
	if s := strings.TrimSpace(device.SerialNumber); s != "" {
		clauses = append(clauses, "serial_number = ?")
		args = append(args, s)
	}
	if mac := strings.TrimSpace(device.MACAddress); mac != "" {
		clauses = append(clauses, "mac_address = ?")
		args = append(args, mac)
	}
	if len(clauses) == 0 {
		return nil, nil
	}

	err = tx.Where(strings.Join(clauses, " OR "), args...).First(&item).Error
	if err == nil {
		return &item, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

func (s *Service) createSyncLog(ctx context.Context, source string) (*models.SyncLog, error) {
	syncLog := &models.SyncLog{
		StartedAt: s.now(),
		Source:    source,
		Status:    models.SyncRunning,
	}
	if err := s.db.WithContext(ctx).Create(syncLog).Error; err != nil {
		return nil, fmt.Errorf("failed to create sync log: %w", err)
	}
	return syncLog, nil
}

func (s *Service) completeSyncLog(ctx context.Context, syncLog *models.SyncLog, result *Result, status models.SyncStatus) error {
	now := s.now()
	syncLog.CompletedAt = &now
	syncLog.Status = status
	syncLog.DevicesFound = result.DevicesFound
	syncLog.Created = result.Created
	syncLog.Updated = result.Updated
	syncLog.Skipped = result.Skipped
	syncLog.Errors = models.ErrorList(result.Errors)

	if err := s.db.WithContext(ctx).Save(syncLog).Error; err != nil {
		return fmt.Errorf("failed to complete sync log: %w", err)
	}
	return nil
}

// deriveIdentity builds the canonical identity serial for a device, falling
// back through MAC, hostname, and IP when no real serial exists.
func deriveIdentity(device models.Device) string {
	if serial := strings.TrimSpace(device.SerialNumber); serial != "" {
		return serial
	}
	if mac := strings.TrimSpace(device.MACAddress); mac != "" {
		return "MAC-" + strings.ReplaceAll(mac, ":", "")
	}
	if hostname := strings.TrimSpace(device.Hostname); hostname != "" {
		return "HOST-" + hostname
	}
	if ip := strings.TrimSpace(device.IPAddress); ip != "" {
		return "IP-" + ip
	}
	return ""
}

// generateAssetTag returns a unique tag for auto-discovered devices.
func generateAssetTag() string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "AUTO-" + short
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
