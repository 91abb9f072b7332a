package netdisco

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"laim/core/apiclient"
	"laim/feature/inventory/models"
	"laim/feature/inventory/sources"

	"go.uber.org/zap"
)

// SourceName is stamped on every device emitted by this client.
const SourceName = "netdisco"

// Client discovers devices through the Netdisco REST API.
//
// Authentication posts credentials to /login and caches the returned API key,
// which later requests carry as a bearer token. Endpoints used:
//
//	POST /login                            - session key
//	GET  /api/v1/search/device             - device search
//	GET  /api/v1/object/device/{ip}        - per-device detail
//	GET  /api/v1/object/device/{ip}/nodes  - associated nodes (MAC source)
type Client struct {
	cfg    Config
	api    *apiclient.Client
	logger *zap.Logger
	apiKey string
}

// New creates a Netdisco client.
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
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}

// Authenticate posts credentials to /login and caches the returned key.
func (c *Client) Authenticate(ctx context.Context) bool {
	if c.cfg.BaseURL == "" || c.cfg.Username == "" || c.cfg.Password == "" {
		c.logger.Warn("Netdisco credentials not configured")
		return false
	}

	form := url.Values{}
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	resp, err := c.api.Post(ctx, "/login", &apiclient.RequestOptions{Form: form})
	if err != nil {
		c.logger.Error("Netdisco authentication failed", zap.Error(err))
		return false
	}

	var payload struct {
		APIKey string `json:"api_key"`
		Key    string `json:"key"`
	}
	if err := resp.JSON(&payload); err != nil {
		c.logger.Error("Netdisco login response malformed", zap.Error(err))
		return false
	}

	key := payload.APIKey
	if key == "" {
		key = payload.Key
	}
	if key == "" {
		c.logger.Error("Netdisco login returned no API key")
		return false
	}

	c.apiKey = key
	c.logger.Info("Netdisco authentication successful")
	return true
}

// TestConnection reports whether the API is reachable with valid credentials.
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

// wireDevice carries the fields Netdisco exposes for a device; the search
// listing and the per-device detail object share this shape.
type wireDevice struct {
	DNS      string `json:"dns"`
	Name     string `json:"name"`
	Serial   string `json:"serial"`
	Model    string `json:"model"`
	Vendor   string `json:"vendor"`
	OSVer    string `json:"os_ver"`
	IP       string `json:"ip"`
	Location string `json:"location"`
}

// merge copies non-empty fields of detail over d, mirroring the detail
// enrichment the search listing gets.
func (d *wireDevice) merge(detail wireDevice) {
	if detail.DNS != "" {
		d.DNS = detail.DNS
	}
	if detail.Name != "" {
		d.Name = detail.Name
	}
	if detail.Serial != "" {
		d.Serial = detail.Serial
	}
	if detail.Model != "" {
		d.Model = detail.Model
	}
	if detail.Vendor != "" {
		d.Vendor = detail.Vendor
	}
	if detail.OSVer != "" {
		d.OSVer = detail.OSVer
	}
	if detail.IP != "" {
		d.IP = detail.IP
	}
	if detail.Location != "" {
		d.Location = detail.Location
	}
}

type wireNode struct {
	MAC string `json:"mac"`
}

// GetDevices searches all devices, enriches each with detail and node MACs,
// and normalizes to the unified schema. Authentication or search failure
// yields an empty result.
func (c *Client) GetDevices(ctx context.Context) ([]models.Device, error) {
	if !c.Authenticate(ctx) {
		c.logger.Error("Cannot fetch devices: authentication failed")
		return nil, nil
	}

	devices, err := c.searchDevices(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Found devices in Netdisco", zap.Int("count", len(devices)))

	result := make([]models.Device, 0, len(devices))
	for _, device := range devices {
		if device.IP == "" {
			continue
		}

		if detail, err := c.deviceDetail(ctx, device.IP); err != nil {
			return result, err
		} else if detail != nil {
			device.merge(*detail)
		}

		nodes, err := c.deviceNodes(ctx, device.IP)
		if err != nil {
			return result, err
		}

		result = append(result, c.transform(device, nodes))
	}

	c.logger.Info("Transformed Netdisco devices", zap.Int("count", len(result)))
	return result, nil
}

// searchDevices lists all devices. Netdisco returns either a bare list or a
// {devices: [...]} wrapper depending on version; both are accepted.
func (c *Client) searchDevices(ctx context.Context) ([]wireDevice, error) {
	query := url.Values{}
	query.Set("q", "") // empty query returns all devices

	resp, err := c.api.Get(ctx, "/api/v1/search/device", &apiclient.RequestOptions{
		Headers: c.authHeaders(),
		Query:   query,
	})
	if err != nil {
		if apiclient.IsClientError(err) {
			c.logger.Error("Failed to search Netdisco devices", zap.Error(err))
			return nil, nil
		}
		return nil, fmt.Errorf("netdisco device search: %w", err)
	}

	var bare []wireDevice
	if err := json.Unmarshal(resp.Body, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		Devices []wireDevice `json:"devices"`
	}
	if err := json.Unmarshal(resp.Body, &wrapped); err != nil {
		return nil, fmt.Errorf("netdisco device search: %w", err)
	}
	return wrapped.Devices, nil
}

// deviceDetail fetches the detail object for one device, nil when the API
// has nothing for it.
func (c *Client) deviceDetail(ctx context.Context, ip string) (*wireDevice, error) {
	resp, err := c.api.Get(ctx, "/api/v1/object/device/"+ip, &apiclient.RequestOptions{Headers: c.authHeaders()})
	if err != nil {
		if apiclient.IsClientError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("netdisco detail for %s: %w", ip, err)
	}

	var detail wireDevice
	if err := resp.JSON(&detail); err != nil {
		return nil, fmt.Errorf("netdisco detail for %s: %w", ip, err)
	}
	return &detail, nil
}

// deviceNodes fetches the node records (MAC source) for one device.
func (c *Client) deviceNodes(ctx context.Context, ip string) ([]wireNode, error) {
	resp, err := c.api.Get(ctx, "/api/v1/object/device/"+ip+"/nodes", &apiclient.RequestOptions{Headers: c.authHeaders()})
	if err != nil {
		if apiclient.IsClientError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("netdisco nodes for %s: %w", ip, err)
	}

	var nodes []wireNode
	if err := resp.JSON(&nodes); err != nil {
		// Some versions wrap errors in an object; treat that as no nodes.
		return nil, nil
	}
	return nodes, nil
}

func (c *Client) transform(device wireDevice, nodes []wireNode) models.Device {
	macs := make([]string, 0, len(nodes))
	for _, node := range nodes {
		macs = append(macs, node.MAC)
	}

	hostname := device.DNS
	if hostname == "" {
		hostname = device.Name
	}

	return models.Device{
		Hostname:        hostname,
		SerialNumber:    device.Serial,
		MACAddress:      sources.FirstMAC(macs),
		IPAddress:       device.IP,
		Model:           device.Model,
		Vendor:          device.Vendor,
		FirmwareVersion: device.OSVer,
		Location:        device.Location,
		Source:          SourceName,
		SourceID:        device.IP, // IP is the primary key in Netdisco
	}
}
