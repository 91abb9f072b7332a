package librenms

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"laim/core/apiclient"
	"laim/feature/inventory/models"
	"laim/feature/inventory/sources"

	"go.uber.org/zap"
)

// SourceName is stamped on every device emitted by this client.
const SourceName = "librenms"

// Client discovers devices through the LibreNMS REST API.
//
// Authentication is a static token in the X-Auth-Token header. Endpoints
// used:
//
//	GET /api/v0/system               - lightweight auth probe
//	GET /api/v0/devices              - device listing
//	GET /api/v0/devices/{id}/ports   - per-device ports (MAC source)
type Client struct {
	cfg    Config
	api    *apiclient.Client
	logger *zap.Logger
}

// New creates a LibreNMS client.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	api := apiclient.New(apiclient.Config{
		BaseURL:            cfg.BaseURL,
		Timeout:            time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxRetries:         cfg.MaxRetries,
		RateLimit:          cfg.RateLimit,
		InsecureSkipVerify: !cfg.VerifySSL,
	}, logger)

	return &Client{cfg: cfg, api: api, logger: logger.With(zap.String("source", SourceName))}
}

// Name returns the source name.
func (c *Client) Name() string {
	return SourceName
}

func (c *Client) authHeaders() map[string]string {
	return map[string]string{"X-Auth-Token": c.cfg.Token}
}

// Authenticate validates the configured API token with a lightweight probe.
func (c *Client) Authenticate(ctx context.Context) bool {
	if c.cfg.BaseURL == "" || c.cfg.Token == "" {
		c.logger.Warn("LibreNMS credentials not configured")
		return false
	}

	_, err := c.api.Get(ctx, "/api/v0/system", &apiclient.RequestOptions{Headers: c.authHeaders()})
	if err != nil {
		c.logger.Error("LibreNMS authentication failed", zap.Error(err))
		return false
	}

	c.logger.Info("LibreNMS authentication successful")
	return true
}

// TestConnection reports whether the API is reachable with a valid token.
func (c *Client) TestConnection(ctx context.Context) bool {
	if c.cfg.BaseURL == "" {
		return false
	}
	return c.Authenticate(ctx)
}

// Close releases the underlying connection pool.
func (c *Client) Close() {
	c.api.Close()
}

// wire types, field names as LibreNMS sends them

type deviceListResponse struct {
	Devices []wireDevice `json:"devices"`
}

type wireDevice struct {
	DeviceID int    `json:"device_id"`
	Hostname string `json:"hostname"`
	SysName  string `json:"sysName"`
	Serial   string `json:"serial"`
	Hardware string `json:"hardware"`
	Vendor   string `json:"vendor"`
	Version  string `json:"version"`
	IP       string `json:"ip"`
	Location string `json:"location"`
}

type portListResponse struct {
	Ports []wirePort `json:"ports"`
}

type wirePort struct {
	IfPhysAddress string `json:"ifPhysAddress"`
}

// GetDevices fetches all devices and their port MACs, normalized to the
// unified schema. Authentication or listing failure yields an empty result.
func (c *Client) GetDevices(ctx context.Context) ([]models.Device, error) {
	if !c.Authenticate(ctx) {
		c.logger.Error("Cannot fetch devices: authentication failed")
		return nil, nil
	}

	devices, err := c.listDevices(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Found devices in LibreNMS", zap.Int("count", len(devices)))

	result := make([]models.Device, 0, len(devices))
	for _, device := range devices {
		if device.DeviceID == 0 {
			continue
		}

		ports, err := c.listPorts(ctx, device.DeviceID)
		if err != nil {
			return result, err
		}

		result = append(result, c.transform(device, ports))
	}

	c.logger.Info("Transformed LibreNMS devices", zap.Int("count", len(result)))
	return result, nil
}

// listDevices returns the raw device collection. HTTP status failures are
// downgraded to an empty listing; transport failures propagate.
func (c *Client) listDevices(ctx context.Context) ([]wireDevice, error) {
	resp, err := c.api.Get(ctx, "/api/v0/devices", &apiclient.RequestOptions{Headers: c.authHeaders()})
	if err != nil {
		if apiclient.IsClientError(err) {
			c.logger.Error("Failed to list LibreNMS devices", zap.Error(err))
			return nil, nil
		}
		return nil, fmt.Errorf("librenms device listing: %w", err)
	}

	var payload deviceListResponse
	if err := resp.JSON(&payload); err != nil {
		return nil, fmt.Errorf("librenms device listing: %w", err)
	}
	return payload.Devices, nil
}

// listPorts returns the port records for one device. Status failures mean
// "no MAC available", not a broken run.
func (c *Client) listPorts(ctx context.Context, deviceID int) ([]wirePort, error) {
	path := fmt.Sprintf("/api/v0/devices/%d/ports", deviceID)
	resp, err := c.api.Get(ctx, path, &apiclient.RequestOptions{Headers: c.authHeaders()})
	if err != nil {
		if apiclient.IsClientError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("librenms ports for device %d: %w", deviceID, err)
	}

	var payload portListResponse
	if err := resp.JSON(&payload); err != nil {
		return nil, fmt.Errorf("librenms ports for device %d: %w", deviceID, err)
	}
	return payload.Ports, nil
}

func (c *Client) transform(device wireDevice, ports []wirePort) models.Device {
	macs := make([]string, 0, len(ports))
	for _, port := range ports {
		macs = append(macs, port.IfPhysAddress)
	}

	hostname := device.Hostname
	if hostname == "" {
		hostname = device.SysName
	}

	vendor := device.Vendor
	if vendor == "" {
		vendor = vendorFromHardware(device.Hardware)
	}

	return models.Device{
		Hostname:        hostname,
		SerialNumber:    device.Serial,
		MACAddress:      sources.FirstMAC(macs),
		IPAddress:       device.IP,
		Model:           device.Hardware,
		Vendor:          vendor,
		FirmwareVersion: device.Version,
		Location:        device.Location,
		Source:          SourceName,
		SourceID:        strconv.Itoa(device.DeviceID),
	}
}
