package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/bnema/sysparse/internal/application/port"
)

// GetSchemaUseCase returns JSON schemas for the documents sysparse emits or reads.
type GetSchemaUseCase struct {
	provider port.SchemaProvider
}

// NewGetSchemaUseCase creates a new GetSchemaUseCase.
func NewGetSchemaUseCase(provider port.SchemaProvider) *GetSchemaUseCase {
	return &GetSchemaUseCase{provider: provider}
}

// Execute returns the indented JSON schema for kind.
func (uc *GetSchemaUseCase) Execute(_ context.Context, kind string) ([]byte, error) {
	if !slices.Contains(uc.provider.Kinds(), kind) {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSchema, kind, uc.provider.Kinds())
	}
	return uc.provider.Schema(kind)
}

// Kinds lists the available schema kinds.
func (uc *GetSchemaUseCase) Kinds() []string {
	return uc.provider.Kinds()
}
