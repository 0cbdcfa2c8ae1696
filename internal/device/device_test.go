package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, valid := range []string{"edge", "local", "cloud"} {
		got, err := ParseType(valid)
		require.NoError(t, err)
		assert.Equal(t, Type(valid), got)
	}

	for _, invalid := range []string{"", "Cloud", "server", "remote"} {
		_, err := ParseType(invalid)
		assert.Error(t, err, "type %q should be rejected", invalid)
	}
}

func TestNewRegistrationLocal(t *testing.T) {
	reg := NewRegistration(TypeLocal, "", "")

	assert.NotEmpty(t, reg.Name)
	assert.Equal(t, "0.0.0.0", reg.APIHost)
	assert.Equal(t, DefaultAPIPort, reg.APIPort)
	assert.Equal(t, "DISABLE", reg.APISSL)
	assert.Equal(t, TypeLocal, reg.Type)
	assert.Empty(t, reg.WANHost, "local devices carry no WAN host")
}

func TestNewRegistrationCloud(t *testing.T) {
	reg := NewRegistration(TypeCloud, "9001", "203.0.113.7")

	assert.Equal(t, "9001", reg.APIPort)
	assert.Equal(t, "203.0.113.7", reg.WANHost)
	assert.Equal(t, TypeCloud, reg.Type)
}

func TestNewRegistrationIgnoresWANHostForNonCloud(t *testing.T) {
	reg := NewRegistration(TypeEdge, "", "203.0.113.7")
	assert.Empty(t, reg.WANHost)
}

func TestNewRegistrationUniqueNames(t *testing.T) {
	a := NewRegistration(TypeLocal, "", "")
	b := NewRegistration(TypeLocal, "", "")
	assert.NotEqual(t, a.Name, b.Name)
}

func TestFormValues(t *testing.T) {
	reg := NewRegistration(TypeCloud, "", "198.51.100.4")
	values := reg.FormValues()

	assert.Equal(t, reg.Name, values.Get("name"))
	assert.Equal(t, "0.0.0.0", values.Get("os_api_host"))
	assert.Equal(t, DefaultAPIPort, values.Get("os_api_port"))
	assert.Equal(t, "DISABLE", values.Get("os_api_ssl"))
	assert.Equal(t, "cloud", values.Get("type"))
	assert.Equal(t, "198.51.100.4", values.Get("wan_host"))

	local := NewRegistration(TypeLocal, "", "")
	assert.False(t, local.FormValues().Has("wan_host"))
}
