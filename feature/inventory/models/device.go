package models

// SourceMerged marks a device assembled from more than one discovery source.
const SourceMerged = "merged"

// Device is the transient, source-agnostic record a discovery source produces
// for one device. No field is guaranteed present except Source; identity is
// derived downstream from whatever fields exist.
type Device struct {
	Hostname        string `json:"hostname,omitempty"`
	SerialNumber    string `json:"serial_number,omitempty"`
	MACAddress      string `json:"mac_address,omitempty"` // canonical XX:XX:XX:XX:XX:XX or empty
	IPAddress       string `json:"ip_address,omitempty"`
	Model           string `json:"model,omitempty"`
	Vendor          string `json:"vendor,omitempty"`
	FirmwareVersion string `json:"firmware_version,omitempty"`
	Location        string `json:"location,omitempty"`
	Source          string `json:"source"`
	SourceID        string `json:"source_id,omitempty"`
}

// Label returns the most human-friendly identifier available, for log and
// error messages.
func (d Device) Label() string {
	if d.Hostname != "" {
		return d.Hostname
	}
	if d.IPAddress != "" {
		return d.IPAddress
	}
	if d.SerialNumber != "" {
		return d.SerialNumber
	}
	return "unknown device"
}
