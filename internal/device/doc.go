// Package device provides an HTTP client for an addressable-LED controller.
//
// The controller exposes a small JSON API on plain HTTP. Every command is a
// single POST; the response body is ignored and only the status code
// matters.
//
// # Endpoints
//
//	POST /setColor       {"r":0-255,"g":0-255,"b":0-255}
//	POST /setBrightness  {"brightness":0-255}
//	POST /turnOn         (no body)
//	POST /turnOff        (no body)
//	POST /setPreset      {"preset":"<id>"}
//	POST /setCustomLeds  [{"segment":0-11,"r":..,"g":..,"b":..}, ...]
//
// # Usage Example
//
//	client := device.NewClient("192.168.4.1")
//
//	if err := client.SetColor(ctx, color.ParseHex("#ff8800")); err != nil {
//	    fmt.Println(device.GetShortErrorMessage(err))
//	}
//
// # Request Lifecycle
//
// Each request is tagged with a UUID and reported to an optional Observer:
// one Pending event, then Succeeded, Failed or TimedOut. There is no retry
// and no ordering between concurrent requests.
//
// # Errors
//
// All errors are *DeviceError. A missing address fails before any network
// activity with ErrTypeNoAddress; non-2xx responses are ErrTypeHTTP; transport
// failures are classified by ClassifyNetworkError.
package device
