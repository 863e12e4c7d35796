package discovery

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/ledctl/ledctl/internal/logging"
)

const (
	// ServiceType is the mDNS service type LED controllers advertise
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for device discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the default HTTP port for LED controllers
	DefaultPort = 80
)

// hostPattern matches controller hostnames such as "esp32-led.local." or "ledctl.local"
var hostPattern = regexp.MustCompile(`(?i)^(esp32|esp|ledctl|led)[a-z0-9_-]*\.local\.?$`)

// Scanner handles mDNS device discovery
type Scanner struct {
	// Timeout is how long Scan listens for announcements
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan listens for the full timeout (or until ctx ends) and returns every
// controller that answered, sorted by name then address.
func (s *Scanner) Scan(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	found := newCollector()
	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for entry := range entries {
			if dev := deviceFromEntry(entry); dev != nil {
				found.add(dev)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	<-ctx.Done()

	return found.devices(), nil
}

// ScanForDevices scans with the given timeout; zero or less uses DefaultScanTimeout
func ScanForDevices(ctx context.Context, timeout time.Duration) ([]*Device, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.Scan(ctx)
}

// collector keeps one Device per address. Controllers re-announce during a
// scan, so the same address usually arrives several times.
type collector struct {
	mu     sync.Mutex
	byAddr map[string]*Device
}

func newCollector() *collector {
	return &collector{byAddr: make(map[string]*Device)}
}

func (c *collector) add(dev *Device) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	addr := dev.Address()
	if _, dup := c.byAddr[addr]; dup {
		return false
	}
	c.byAddr[addr] = dev
	logging.Debug("controller discovered",
		zap.String("name", dev.Name),
		zap.String("address", addr),
	)
	return true
}

func (c *collector) devices() []*Device {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Device, 0, len(c.byAddr))
	for _, dev := range c.byAddr {
		out = append(out, dev)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Address() < out[j].Address()
	})
	return out
}

// deviceFromEntry converts a service entry into a Device, or nil when the
// host does not look like a controller or advertises no address.
func deviceFromEntry(entry *zeroconf.ServiceEntry) *Device {
	if !hostPattern.MatchString(entry.HostName) {
		return nil
	}
	ip := entryIP(entry)
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	return &Device{
		Name:         instanceName(entry),
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     parseTXT(entry.Text),
		DiscoveredAt: time.Now(),
	}
}

// entryIP prefers the first IPv4 address
func entryIP(entry *zeroconf.ServiceEntry) string {
	if len(entry.AddrIPv4) > 0 {
		return entry.AddrIPv4[0].String()
	}
	if len(entry.AddrIPv6) > 0 {
		return entry.AddrIPv6[0].String()
	}
	return ""
}

// instanceName is the service instance, or the bare host when unnamed
func instanceName(entry *zeroconf.ServiceEntry) string {
	if entry.Instance != "" {
		return entry.Instance
	}
	host := strings.TrimSuffix(entry.HostName, ".")
	return strings.TrimSuffix(host, ".local")
}

// parseTXT turns "key=value" records into a map; bare keys map to ""
func parseTXT(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}
	return metadata
}
