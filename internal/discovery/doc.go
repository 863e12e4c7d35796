// Package discovery finds LED controllers on the local network using mDNS.
//
// Controllers advertise an "_http._tcp" service. Only services whose host
// name starts with esp32, esp, led or ledctl are reported, which covers the
// default names of common ESP32 firmwares.
//
// # Usage Example
//
//	devices, err := discovery.ScanForDevices(ctx, 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, d := range devices {
//	    fmt.Printf("%s at %s\n", d.Name, d.Address())
//	}
//
// Device.Address returns a value suitable for the panel's device address
// field (host, or host:port when the port is not 80).
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Devices must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
