// Package schema reflects JSON schemas for sysparse documents with invopop/jsonschema.
package schema

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/bnema/sysparse/internal/application/port"
	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/infrastructure/config"
)

const baseID = "https://github.com/bnema/sysparse/"

// Provider implements port.SchemaProvider.
type Provider struct{}

var _ port.SchemaProvider = (*Provider)(nil)

// NewProvider creates a schema provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Kinds lists the documents a schema exists for.
func (p *Provider) Kinds() []string {
	return []string{"config", "ipaddr", "person", "unit"}
}

// Schema returns the indented JSON schema for kind.
func (p *Provider) Schema(kind string) ([]byte, error) {
	var s *jsonschema.Schema
	switch kind {
	case "config":
		s = config.Schema()
	case "ipaddr":
		s = reflector().Reflect(&[]entity.NetInterface{})
		s.Title = "ip addr interfaces"
	case "person":
		s = reflector().Reflect(&entity.Person{})
		s.Title = "person"
	case "unit":
		s = reflector().Reflect(&entity.SystemdFile{})
		s.Title = "systemd unit file"
	default:
		return nil, fmt.Errorf("no schema for %q", kind)
	}
	if s.ID == "" {
		s.ID = jsonschema.ID(baseID + kind + ".schema.json")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", kind, err)
	}
	return data, nil
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		// Addresses marshal through encoding.TextMarshaler as "10.0.0.1/24".
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(netip.Prefix{}) {
				return &jsonschema.Schema{Type: "string", Description: "address with prefix length"}
			}
			return nil
		},
	}
}
