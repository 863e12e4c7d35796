package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Device represents an LED controller found on the network
type Device struct {
	// Name is the mDNS service instance name (e.g., "ESP32 LED Strip")
	Name string

	// Hostname is the mDNS hostname (e.g., "esp32-led.local.")
	Hostname string

	// IP is the device address, IPv4 when available
	IP string

	// Port is the HTTP port (typically 80)
	Port int

	// Metadata contains the mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("LED controller %s (%s) at %s", d.Name, d.Hostname, d.Address())
}

// Address returns the value to use as the panel's device address.
// The port is omitted when it is the HTTP default.
func (d *Device) Address() string {
	if d.Port == 0 || d.Port == DefaultPort {
		if net.ParseIP(d.IP).To4() == nil && net.ParseIP(d.IP) != nil {
			return "[" + d.IP + "]"
		}
		return d.IP
	}
	return net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}

// BaseURL returns the HTTP base URL for the device
func (d *Device) BaseURL() string {
	return "http://" + d.Address()
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
