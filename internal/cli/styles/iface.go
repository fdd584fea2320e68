package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/sysparse/internal/domain/entity"
)

// RenderInterfaces renders parsed `ip addr` output as a compact listing.
func (t *Theme) RenderInterfaces(ifaces []entity.NetInterface) string {
	if len(ifaces) == 0 {
		return t.Subtle.Render("No interfaces.") + "\n"
	}

	var sb strings.Builder
	for i := range ifaces {
		if i > 0 {
			sb.WriteByte('\n')
		}
		t.renderInterface(&sb, &ifaces[i])
	}
	return sb.String()
}

func (t *Theme) renderInterface(sb *strings.Builder, n *entity.NetInterface) {
	name := n.Name
	if n.Parent != "" {
		name += "@" + n.Parent
	}
	fmt.Fprintf(sb, "%s %s %s %s\n",
		t.Subtle.Render(fmt.Sprintf("%d:", n.Index)),
		t.Title.Render(name),
		t.LinkStateBadge(n.State),
		t.Subtle.Render(fmt.Sprintf("mtu %d", n.MTU)),
	)

	if n.LinkType != "" {
		link := n.LinkType
		if n.MAC != "" {
			link += " " + n.MAC
		}
		fmt.Fprintf(sb, "    %s %s\n", t.Subtle.Render("link"), link)
	}
	if n.Master != "" {
		fmt.Fprintf(sb, "    %s %s\n", t.Subtle.Render("master"), n.Master)
	}

	for _, a := range n.Addresses {
		addr := a.Prefix.String()
		if a.Peer != nil {
			addr += " peer " + a.Peer.String()
		}
		scope := a.Scope
		if scope == "" {
			scope = "-"
		}
		fmt.Fprintf(sb, "    %s %s %s\n",
			t.Key.Render(fmt.Sprintf("%-5s", a.Family)),
			t.Highlight.Render(addr),
			t.Subtle.Render("scope "+scope),
		)
	}
}
