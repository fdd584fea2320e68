package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/logging"
	"github.com/bnema/sysparse/internal/parser/systemd"
)

// ParsedUnit is the outcome of parsing one unit file.
type ParsedUnit struct {
	Path     string              `json:"path"`
	Name     string              `json:"name"`
	File     *entity.SystemdFile `json:"file"`
	Checksum string              `json:"checksum"`
}

// ParseUnitUseCase reads and parses unit files.
type ParseUnitUseCase struct {
	strict  bool
	workers int
}

// NewParseUnitUseCase creates a parser. workers bounds ParseMany concurrency.
func NewParseUnitUseCase(strict bool, workers int) *ParseUnitUseCase {
	if workers < 1 {
		workers = 1
	}
	return &ParseUnitUseCase{strict: strict, workers: workers}
}

// Execute parses the unit file at path and records the checksum of its bytes.
func (uc *ParseUnitUseCase) Execute(ctx context.Context, path string) (*ParsedUnit, error) {
	log := logging.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read unit file: %w", err)
	}

	parsed, err := uc.parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	parsed.Path = path
	parsed.Name = entity.UnitNameFromPath(path)
	parsed.Checksum = checksum(data)

	log.Debug().
		Str("file", path).
		Str("checksum", parsed.Checksum[:12]).
		Int("other_sections", len(parsed.File.Other)).
		Msg("unit parsed")

	return parsed, nil
}

// ParseReader parses unit content from r, e.g. standard input.
func (uc *ParseUnitUseCase) ParseReader(_ context.Context, name string, r io.Reader) (*ParsedUnit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read unit: %w", err)
	}
	parsed, err := uc.parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	parsed.Name = name
	parsed.Checksum = checksum(data)
	return parsed, nil
}

// ParseMany parses paths concurrently and returns results in input order.
// The first failure cancels the remaining work.
func (uc *ParseUnitUseCase) ParseMany(ctx context.Context, paths []string) ([]*ParsedUnit, error) {
	results := make([]*ParsedUnit, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parsed, err := uc.Execute(gctx, path)
			if err != nil {
				return err
			}
			results[i] = parsed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (uc *ParseUnitUseCase) parse(r io.Reader) (*ParsedUnit, error) {
	file, err := systemd.Parse(r, systemd.WithStrict(uc.strict))
	if err != nil {
		return nil, err
	}
	return &ParsedUnit{File: file}, nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
