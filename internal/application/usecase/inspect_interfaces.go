package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/bnema/sysparse/internal/application/port"
	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/logging"
	"github.com/bnema/sysparse/internal/parser/ipaddr"
)

// InspectInterfacesUseCase reports network interfaces from `ip addr` output.
type InspectInterfacesUseCase struct {
	runner port.CommandRunner
}

// NewInspectInterfacesUseCase creates a new InspectInterfacesUseCase.
func NewInspectInterfacesUseCase(runner port.CommandRunner) *InspectInterfacesUseCase {
	return &InspectInterfacesUseCase{runner: runner}
}

// Execute runs `ip addr show` and parses its output. A non-empty iface keeps
// only that interface and fails with ErrInterfaceNotFound when it is absent.
func (uc *InspectInterfacesUseCase) Execute(ctx context.Context, iface string) ([]entity.NetInterface, error) {
	log := logging.FromContext(ctx)

	out, err := uc.runner.Run(ctx, "ip", "addr", "show")
	if err != nil {
		return nil, fmt.Errorf("ip addr: %w", err)
	}
	log.Debug().Int("bytes", len(out)).Msg("ip addr output captured")

	return uc.FromReader(ctx, bytes.NewReader(out), iface)
}

// FromReader parses previously captured `ip addr` output.
func (uc *InspectInterfacesUseCase) FromReader(_ context.Context, r io.Reader, iface string) ([]entity.NetInterface, error) {
	ifaces, err := ipaddr.Parse(r)
	if err != nil {
		return nil, err
	}
	if iface == "" {
		return ifaces, nil
	}

	for _, it := range ifaces {
		if it.Name == iface {
			return []entity.NetInterface{it}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrInterfaceNotFound, iface)
}
