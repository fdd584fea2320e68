// Package ipaddr parses the human readable output of `ip addr show`.
package ipaddr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"strconv"
	"strings"

	"github.com/bnema/sysparse/internal/domain/entity"
)

var (
	ErrOrphanLine      = errors.New("detail line without interface header")
	ErrMalformedHeader = errors.New("malformed interface header")
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidNumber   = errors.New("invalid number")
)

// ParseError reports the line a parse failure happened on.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type parser struct {
	ifaces []entity.NetInterface
	lineNo int
	text   string
}

// Parse reads `ip addr` output and returns one entry per interface, in input order.
func Parse(r io.Reader) ([]entity.NetInterface, error) {
	p := &parser{ifaces: make([]entity.NetInterface, 0)}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.lineNo++
		raw := sc.Text()
		p.text = strings.TrimSpace(raw)
		if p.text == "" {
			continue
		}

		var err error
		if isHeader(raw) {
			err = p.header()
		} else {
			err = p.detail()
		}
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ip addr output: %w", err)
	}
	return p.ifaces, nil
}

// ParseString parses output held in memory.
func ParseString(out string) ([]entity.NetInterface, error) {
	return Parse(strings.NewReader(out))
}

// isHeader reports whether raw starts an interface block ("2: eth0: <...>").
func isHeader(raw string) bool {
	if raw == "" || raw[0] == ' ' || raw[0] == '\t' {
		return false
	}
	idx, _, ok := strings.Cut(raw, ":")
	if !ok || idx == "" {
		return false
	}
	for _, c := range idx {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (p *parser) fail(err error) error {
	return &ParseError{Line: p.lineNo, Text: p.text, Err: err}
}

func (p *parser) header() error {
	idxStr, rest, _ := strings.Cut(p.text, ":")
	index, err := strconv.Atoi(idxStr)
	if err != nil {
		return p.fail(ErrInvalidNumber)
	}

	name, rest, ok := strings.Cut(strings.TrimSpace(rest), ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return p.fail(ErrMalformedHeader)
	}

	iface := entity.NetInterface{Index: index, Name: name, Flags: []string{}, Addresses: []entity.InterfaceAddress{}}
	if base, parent, found := strings.Cut(name, "@"); found {
		iface.Name = base
		iface.Parent = parent
	}

	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "<") {
		return p.fail(ErrMalformedHeader)
	}
	flags, rest, ok := strings.Cut(rest[1:], ">")
	if !ok {
		return p.fail(ErrMalformedHeader)
	}
	if flags != "" {
		iface.Flags = strings.Split(flags, ",")
	}

	fields := strings.Fields(rest)
	for i := 0; i+1 < len(fields); i += 2 {
		key, value := fields[i], fields[i+1]
		switch key {
		case "mtu":
			if iface.MTU, err = strconv.Atoi(value); err != nil {
				return p.fail(ErrInvalidNumber)
			}
		case "qlen":
			if iface.Qlen, err = strconv.Atoi(value); err != nil {
				return p.fail(ErrInvalidNumber)
			}
		case "qdisc":
			iface.Qdisc = value
		case "master":
			iface.Master = value
		case "state":
			iface.State = value
		case "group":
			iface.Group = value
		}
	}

	p.ifaces = append(p.ifaces, iface)
	return nil
}

func (p *parser) current() *entity.NetInterface {
	if len(p.ifaces) == 0 {
		return nil
	}
	return &p.ifaces[len(p.ifaces)-1]
}

func (p *parser) detail() error {
	iface := p.current()
	if iface == nil {
		return p.fail(ErrOrphanLine)
	}

	fields := strings.Fields(p.text)
	switch {
	case strings.HasPrefix(fields[0], "link/"):
		p.link(iface, fields)
	case fields[0] == "altname" && len(fields) > 1:
		iface.AltNames = append(iface.AltNames, fields[1])
	case fields[0] == entity.FamilyInet || fields[0] == entity.FamilyInet6:
		return p.address(iface, fields)
	case fields[0] == "valid_lft":
		if len(iface.Addresses) == 0 {
			return p.fail(ErrOrphanLine)
		}
		addr := &iface.Addresses[len(iface.Addresses)-1]
		for i := 0; i+1 < len(fields); i += 2 {
			switch fields[i] {
			case "valid_lft":
				addr.ValidLifetime = fields[i+1]
			case "preferred_lft":
				addr.PreferredLifetime = fields[i+1]
			}
		}
	}
	return nil
}

func (p *parser) link(iface *entity.NetInterface, fields []string) {
	iface.LinkType = strings.TrimPrefix(fields[0], "link/")

	i := 1
	if len(fields) > 1 && !isLinkKeyword(fields[1]) {
		iface.MAC = fields[1]
		i = 2
	}
	for ; i+1 < len(fields); i += 2 {
		if fields[i] == "brd" {
			iface.Broadcast = fields[i+1]
		}
	}
}

func isLinkKeyword(s string) bool {
	switch s {
	case "brd", "permaddr", "link-netnsid", "link-netns":
		return true
	}
	return false
}

func (p *parser) address(iface *entity.NetInterface, fields []string) error {
	if len(fields) < 2 {
		return p.fail(ErrInvalidAddress)
	}

	addr := entity.InterfaceAddress{Family: fields[0]}
	local := fields[1]

	var labels []string
	for i := 2; i < len(fields); i++ {
		switch fields[i] {
		case "peer", "brd", "scope", "metric", "proto":
			if i+1 >= len(fields) {
				return p.fail(ErrInvalidAddress)
			}
			value := fields[i+1]
			switch fields[i] {
			case "peer":
				peer, err := parsePrefix(value)
				if err != nil {
					return p.fail(ErrInvalidAddress)
				}
				addr.Peer = &peer
			case "brd":
				addr.Broadcast = value
			case "scope":
				addr.Scope = value
			}
			i++
		default:
			labels = append(labels, fields[i])
		}
	}

	for _, tok := range labels {
		if tok == iface.Name || strings.HasPrefix(tok, iface.Name+":") {
			addr.Label = tok
			continue
		}
		addr.Flags = append(addr.Flags, tok)
	}

	if strings.Contains(local, "/") {
		prefix, err := netip.ParsePrefix(local)
		if err != nil {
			return p.fail(ErrInvalidAddress)
		}
		addr.Prefix = prefix
	} else {
		ip, err := netip.ParseAddr(local)
		if err != nil {
			return p.fail(ErrInvalidAddress)
		}
		bits := ip.BitLen()
		if addr.Peer != nil {
			bits = addr.Peer.Bits()
		}
		addr.Prefix = netip.PrefixFrom(ip, bits)
	}

	iface.Addresses = append(iface.Addresses, addr)
	return nil
}

// parsePrefix accepts "10.0.0.1/32" as well as a bare address.
func parsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		return netip.ParsePrefix(s)
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(ip, ip.BitLen()), nil
}
