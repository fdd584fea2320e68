// Package sysparse is the public API: the Person record, the zero-argument
// Parser entry point and the unit file and `ip addr` parsers behind it.
package sysparse

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/logging"
	"github.com/bnema/sysparse/internal/parser/ipaddr"
	"github.com/bnema/sysparse/internal/parser/systemd"
)

const (
	// EnvUnitFile overrides the file read by Parser.
	EnvUnitFile = "SYSPARSE_UNIT_FILE"
	// DefaultUnitFile is read from the working directory when EnvUnitFile is unset.
	DefaultUnitFile = "unit.service"
)

type (
	Person           = entity.Person
	SystemdFile      = entity.SystemdFile
	NetInterface     = entity.NetInterface
	InterfaceAddress = entity.InterfaceAddress
)

// NewPerson returns a Person with zero age and an empty name.
func NewPerson() Person {
	return entity.NewPerson()
}

// DefaultUnitPath returns the file Parser reads.
func DefaultUnitPath() string {
	if path := os.Getenv(EnvUnitFile); path != "" {
		return path
	}
	return DefaultUnitFile
}

// Parser parses the unit file at DefaultUnitPath and logs the result.
// It reports failures through the log only and never panics.
func Parser() {
	ctx := logging.WithContext(context.Background(), logging.NewFromEnv())
	ParserAt(ctx, DefaultUnitPath())
}

// ParserAt is Parser with an explicit logger context and path.
func ParserAt(ctx context.Context, path string) {
	ctx = logging.WithFile(logging.WithComponent(ctx, "parser"), path)
	defer logging.RecoverPanic(ctx, "parser")
	log := logging.FromContext(ctx)

	file, err := ParseFile(ctx, path)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse unit file")
		return
	}

	data, err := json.Marshal(file)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode unit file")
		return
	}
	log.Info().RawJSON("unit", data).Msg("unit file parsed")
}

// ParseFile parses the unit file at path.
func ParseFile(ctx context.Context, path string) (*SystemdFile, error) {
	file, err := systemd.ParseFile(path)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().Str("file", path).Msg("unit file read")
	return file, nil
}

// ParseUnit parses unit file content from r.
func ParseUnit(r io.Reader) (*SystemdFile, error) {
	return systemd.Parse(r)
}

// ParseIPAddr parses the output of `ip addr show`.
func ParseIPAddr(r io.Reader) ([]NetInterface, error) {
	return ipaddr.Parse(r)
}
