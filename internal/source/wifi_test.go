package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNmcliScan(t *testing.T) {
	out := `AA\:BB\:CC\:DD\:EE\:01:HomeNet:2437 MHz:6:100
aa\:bb\:cc\:dd\:ee\:02:Cafe\:Guest:5180 MHz:36:50
not-a-mac:Broken:2412 MHz:1:40
AA\:BB\:CC\:DD\:EE\:03:NoSignal:2412 MHz:1:--

`
	aps := parseNmcliScan(out)
	require.Len(t, aps, 2)

	assert.Equal(t, accessPoint{bssid: "AA:BB:CC:DD:EE:01", ssid: "HomeNet", signal: -30}, aps[0])
	assert.Equal(t, accessPoint{bssid: "AA:BB:CC:DD:EE:02", ssid: "Cafe:Guest", signal: -65}, aps[1])
}

func TestParseIWScan(t *testing.T) {
	out := `BSS 11:22:33:44:55:66(on wlan0)
	freq: 2412
	signal: -47.00 dBm
	SSID: Lab
BSS 11:22:33:44:55:77(on wlan0)
	SSID: Silent
BSS 11:22:33:44:55:88(on wlan0) -- associated
	signal: -71.50 dBm
	SSID:
`
	aps := parseIWScan(out)
	require.Len(t, aps, 2)

	assert.Equal(t, accessPoint{bssid: "11:22:33:44:55:66", ssid: "Lab", signal: -47}, aps[0])
	assert.Equal(t, "11:22:33:44:55:88", aps[1].bssid)
	assert.Equal(t, -71.5, aps[1].signal)
	assert.Empty(t, aps[1].ssid)
}

func TestIsValidMAC(t *testing.T) {
	assert.True(t, isValidMAC("AA:BB:CC:00:11:22"))
	assert.False(t, isValidMAC("aa:bb:cc:00:11:22"))
	assert.False(t, isValidMAC("AA-BB-CC-00-11-22"))
	assert.False(t, isValidMAC("AA:BB:CC:00:11"))
}
