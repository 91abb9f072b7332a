package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ItemType is the hardware category of an inventory item.
type ItemType string

const (
	TypeFirewall     ItemType = "Firewall"
	TypeSwitch       ItemType = "Switch"
	TypeWAP          ItemType = "WAP"
	TypeServer       ItemType = "Server"
	TypeDesktop      ItemType = "Desktop"
	TypeLaptop       ItemType = "Laptop"
	TypeSmartDisplay ItemType = "Smart Display"
)

// SyncStatus is the lifecycle state of a sync run.
type SyncStatus string

const (
	SyncRunning   SyncStatus = "running"
	SyncCompleted SyncStatus = "completed"
	SyncFailed    SyncStatus = "failed"
)

// InventoryItem is a persistent inventory record. SerialNumber is the
// canonical identity: once a row exists, sync never modifies it again, so
// manual edits are never clobbered by discovery.
type InventoryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Core identification fields
	Hostname     string  `gorm:"size:255;not null;index" json:"hostname"`
	SerialNumber string  `gorm:"size:100;not null;uniqueIndex" json:"serial_number"`
	MACAddress   *string `gorm:"size:17;uniqueIndex" json:"mac_address"` // XX:XX:XX:XX:XX:XX
	AssetTag     string  `gorm:"size:100;not null;uniqueIndex" json:"asset_tag"`

	// Classification fields
	ItemType     ItemType `gorm:"size:20;not null;index" json:"item_type"`
	RoomLocation string   `gorm:"size:100;not null;index" json:"room_location"`
	SubLocation  string   `gorm:"size:100" json:"sub_location,omitempty"`

	// Metadata
	Notes     string    `gorm:"size:500" json:"notes,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Sync provenance fields
	Source       string     `gorm:"size:50" json:"source,omitempty"`
	SourceID     string     `gorm:"size:255" json:"source_id,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`

	// Descriptive fields
	FirmwareVersion string `gorm:"size:100" json:"firmware_version,omitempty"`
	IPAddress       string `gorm:"size:45" json:"ip_address,omitempty"` // IPv4 or IPv6
	Model           string `gorm:"size:255" json:"model,omitempty"`
	Vendor          string `gorm:"size:255" json:"vendor,omitempty"`
}

// TableName overrides the table name.
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// ErrorList stores an ordered list of error strings as a JSON column.
type ErrorList []string

// Value implements driver.Valuer.
func (e ErrorList) Value() (driver.Value, error) {
	if len(e) == 0 {
		return nil, nil
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner.
func (e *ErrorList) Scan(value any) error {
	if value == nil {
		*e = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	default:
		return fmt.Errorf("unsupported type %T for ErrorList", value)
	}
}

// SyncLog is an append-only ledger entry for one sync run. A row is created
// in the running state before any network I/O and transitions exactly once to
// completed or failed.
type SyncLog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StartedAt   time.Time  `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Source string     `gorm:"size:50;not null" json:"source"` // all, librenms, netdisco
	Status SyncStatus `gorm:"size:20;not null" json:"status"`

	DevicesFound int `json:"devices_found"`
	Created      int `json:"created"`
	Updated      int `json:"updated"`
	Skipped      int `json:"skipped"`

	Errors ErrorList `gorm:"type:json" json:"errors,omitempty"`
}

// TableName overrides the table name.
func (SyncLog) TableName() string {
	return "sync_logs"
}
