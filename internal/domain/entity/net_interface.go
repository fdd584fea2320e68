package entity

import "net/netip"

// Address families reported by iproute2.
const (
	FamilyInet  = "inet"
	FamilyInet6 = "inet6"
)

// NetInterface is one interface block from `ip addr` output.
type NetInterface struct {
	Index     int                `json:"index"`
	Name      string             `json:"name"`
	Parent    string             `json:"parent,omitempty"`
	Flags     []string           `json:"flags"`
	MTU       int                `json:"mtu,omitempty"`
	Qdisc     string             `json:"qdisc,omitempty"`
	Master    string             `json:"master,omitempty"`
	State     string             `json:"state,omitempty"`
	Group     string             `json:"group,omitempty"`
	Qlen      int                `json:"qlen,omitempty"`
	LinkType  string             `json:"linkType,omitempty"`
	MAC       string             `json:"mac,omitempty"`
	Broadcast string             `json:"broadcast,omitempty"`
	AltNames  []string           `json:"altNames,omitempty"`
	Addresses []InterfaceAddress `json:"addresses"`
}

// InterfaceAddress is an inet/inet6 line with its lifetimes.
// For point-to-point links Prefix carries the local address and Peer the remote prefix.
type InterfaceAddress struct {
	Family            string        `json:"family"`
	Prefix            netip.Prefix  `json:"prefix"`
	Peer              *netip.Prefix `json:"peer,omitempty"`
	Broadcast         string        `json:"broadcast,omitempty"`
	Scope             string        `json:"scope,omitempty"`
	Label             string        `json:"label,omitempty"`
	Flags             []string      `json:"flags,omitempty"`
	ValidLifetime     string        `json:"validLifetime,omitempty"`
	PreferredLifetime string        `json:"preferredLifetime,omitempty"`
}

// HasFlag reports whether the interface advertises the given link flag (UP, LOOPBACK, ...).
func (n *NetInterface) HasFlag(flag string) bool {
	for _, f := range n.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// IsUp reports whether the link is administratively up.
func (n *NetInterface) IsUp() bool {
	return n.HasFlag("UP")
}

// AddressesOf returns the addresses of one family.
func (n *NetInterface) AddressesOf(family string) []InterfaceAddress {
	var out []InterfaceAddress
	for _, a := range n.Addresses {
		if a.Family == family {
			out = append(out, a)
		}
	}
	return out
}
