package ipaddr

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysparse/internal/domain/entity"
)

const sampleOutput = `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN group default qlen 1000
    link/loopback 00:00:00:00:00:00 brd 00:00:00:00:00:00
    inet 127.0.0.1/8 scope host lo
       valid_lft forever preferred_lft forever
    inet6 ::1/128 scope host noprefixroute
       valid_lft forever preferred_lft forever
2: enp3s0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc fq_codel state UP group default qlen 1000
    link/ether 52:54:00:12:34:56 brd ff:ff:ff:ff:ff:ff
    altname enx525400123456
    inet 192.168.1.20/24 brd 192.168.1.255 scope global dynamic noprefixroute enp3s0
       valid_lft 85234sec preferred_lft 85234sec
    inet 192.168.1.21/24 brd 192.168.1.255 scope global secondary enp3s0:web
       valid_lft forever preferred_lft forever
    inet6 fe80::5054:ff:fe12:3456/64 scope link
       valid_lft forever preferred_lft forever
3: veth1@if2: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue master br0 state UP group default
    link/ether aa:bb:cc:dd:ee:ff brd ff:ff:ff:ff:ff:ff link-netnsid 0
4: tun0: <POINTOPOINT,MULTICAST,NOARP,UP,LOWER_UP> mtu 1500 qdisc fq_codel state UNKNOWN group default qlen 500
    link/none
    inet 10.8.0.1 peer 10.8.0.2/32 scope global tun0
       valid_lft forever preferred_lft forever
`

func TestParse_SampleOutput(t *testing.T) {
	ifaces, err := ParseString(sampleOutput)
	require.NoError(t, err)
	require.Len(t, ifaces, 4)

	lo := ifaces[0]
	assert.Equal(t, 1, lo.Index)
	assert.Equal(t, "lo", lo.Name)
	assert.Equal(t, []string{"LOOPBACK", "UP", "LOWER_UP"}, lo.Flags)
	assert.Equal(t, 65536, lo.MTU)
	assert.Equal(t, "noqueue", lo.Qdisc)
	assert.Equal(t, "UNKNOWN", lo.State)
	assert.Equal(t, "default", lo.Group)
	assert.Equal(t, 1000, lo.Qlen)
	assert.Equal(t, "loopback", lo.LinkType)
	assert.Equal(t, "00:00:00:00:00:00", lo.MAC)
	require.Len(t, lo.Addresses, 2)
	assert.Equal(t, "127.0.0.1/8", lo.Addresses[0].Prefix.String())
	assert.Equal(t, "host", lo.Addresses[0].Scope)
	assert.Equal(t, "lo", lo.Addresses[0].Label)
	assert.Equal(t, "forever", lo.Addresses[0].ValidLifetime)
	assert.Equal(t, entity.FamilyInet6, lo.Addresses[1].Family)
	assert.Equal(t, []string{"noprefixroute"}, lo.Addresses[1].Flags)

	eth := ifaces[1]
	assert.Equal(t, "enp3s0", eth.Name)
	assert.Equal(t, "ether", eth.LinkType)
	assert.Equal(t, "52:54:00:12:34:56", eth.MAC)
	assert.Equal(t, "ff:ff:ff:ff:ff:ff", eth.Broadcast)
	assert.Equal(t, []string{"enx525400123456"}, eth.AltNames)
	require.Len(t, eth.Addresses, 3)
	assert.Equal(t, "192.168.1.255", eth.Addresses[0].Broadcast)
	assert.Equal(t, []string{"dynamic", "noprefixroute"}, eth.Addresses[0].Flags)
	assert.Equal(t, "85234sec", eth.Addresses[0].ValidLifetime)
	assert.Equal(t, "85234sec", eth.Addresses[0].PreferredLifetime)
	assert.Equal(t, "enp3s0:web", eth.Addresses[1].Label)
	assert.Equal(t, []string{"secondary"}, eth.Addresses[1].Flags)
	assert.Equal(t, "link", eth.Addresses[2].Scope)

	veth := ifaces[2]
	assert.Equal(t, "veth1", veth.Name)
	assert.Equal(t, "if2", veth.Parent)
	assert.Equal(t, "br0", veth.Master)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", veth.MAC)
	assert.Empty(t, veth.Addresses)

	tun := ifaces[3]
	assert.Equal(t, "none", tun.LinkType)
	assert.Empty(t, tun.MAC)
	require.Len(t, tun.Addresses, 1)
	assert.Equal(t, "10.8.0.1/32", tun.Addresses[0].Prefix.String())
	require.NotNil(t, tun.Addresses[0].Peer)
	assert.Equal(t, "10.8.0.2/32", tun.Addresses[0].Peer.String())
	assert.Equal(t, "tun0", tun.Addresses[0].Label)
}

func TestParse_EmptyInput(t *testing.T) {
	ifaces, err := ParseString("")
	require.NoError(t, err)
	assert.NotNil(t, ifaces)
	assert.Empty(t, ifaces)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		line    int
	}{
		{name: "orphan address", input: "    inet 10.0.0.1/8 scope global\n", wantErr: ErrOrphanLine, line: 1},
		{name: "lifetime without address", input: "1: lo: <UP> mtu 1\n    valid_lft forever preferred_lft forever\n", wantErr: ErrOrphanLine, line: 2},
		{name: "missing flags", input: "1: lo: mtu 1500\n", wantErr: ErrMalformedHeader, line: 1},
		{name: "bad mtu", input: "1: lo: <UP> mtu big\n", wantErr: ErrInvalidNumber, line: 1},
		{name: "bad prefix", input: "1: lo: <UP> mtu 1\n    inet 300.0.0.1/8 scope host lo\n", wantErr: ErrInvalidAddress, line: 2},
		{name: "dangling keyword", input: "1: lo: <UP> mtu 1\n    inet 10.0.0.1/8 scope\n", wantErr: ErrInvalidAddress, line: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParse_JSONEncodesPrefixesAsStrings(t *testing.T) {
	ifaces, err := ParseString("1: lo: <UP> mtu 1\n    inet 127.0.0.1/8 scope host lo\n")
	require.NoError(t, err)

	data, err := json.Marshal(ifaces)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"prefix":"127.0.0.1/8"`)
}
