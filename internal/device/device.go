package device

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Type classifies a registered device.
type Type string

const (
	TypeEdge  Type = "edge"
	TypeLocal Type = "local"
	TypeCloud Type = "cloud"
)

// DefaultAPIPort is the port the installed server API listens on unless a
// cloud install chooses another one.
const DefaultAPIPort = "7001"

// ParseType validates a device type argument.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeEdge, TypeLocal, TypeCloud:
		return Type(s), nil
	default:
		return "", fmt.Errorf("invalid device type %q (must be edge, local or cloud)", s)
	}
}

// Registration is the payload sent to the register-device endpoint.
type Registration struct {
	Name    string `json:"name"`
	APIHost string `json:"os_api_host"`
	APIPort string `json:"os_api_port"`
	APISSL  string `json:"os_api_ssl"`
	WANHost string `json:"wan_host,omitempty"`
	Type    Type   `json:"type"`
}

// NewRegistration builds a registration payload for a device type. wanHost is
// only meaningful for cloud devices; port falls back to DefaultAPIPort.
func NewRegistration(t Type, port, wanHost string) Registration {
	if port == "" {
		port = DefaultAPIPort
	}
	reg := Registration{
		Name:    uuid.NewString(),
		APIHost: "0.0.0.0",
		APIPort: port,
		APISSL:  "DISABLE",
		Type:    t,
	}
	if t == TypeCloud {
		reg.WANHost = wanHost
	}
	return reg
}

// FormValues encodes the registration the way the backend expects it
// (form fields, not JSON).
func (r Registration) FormValues() url.Values {
	values := url.Values{}
	values.Set("name", r.Name)
	values.Set("os_api_host", r.APIHost)
	values.Set("os_api_port", r.APIPort)
	values.Set("os_api_ssl", r.APISSL)
	values.Set("type", string(r.Type))
	if r.WANHost != "" {
		values.Set("wan_host", r.WANHost)
	}
	return values
}
