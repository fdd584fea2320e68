package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/logging"
)

// DefaultEditOutput is where edited units are written when no destination is given.
const DefaultEditOutput = "updated_unit.service"

const editedFilePerm = 0o644

// EditUnitInput lists the changes applied to a unit. Nil pointers leave a field untouched.
type EditUnitInput struct {
	ExecStart      *string
	Description    *string
	AddAfter       []string
	RemoveAfter    []string
	AddWants       []string
	RemoveWants    []string
	AddWantedBy    []string
	RemoveWantedBy []string
}

// IsEmpty reports whether the input changes nothing.
func (in EditUnitInput) IsEmpty() bool {
	return in.ExecStart == nil && in.Description == nil &&
		len(in.AddAfter) == 0 && len(in.RemoveAfter) == 0 &&
		len(in.AddWants) == 0 && len(in.RemoveWants) == 0 &&
		len(in.AddWantedBy) == 0 && len(in.RemoveWantedBy) == 0
}

// EditUnitUseCase modifies parsed units and renders them back to unit syntax.
type EditUnitUseCase struct {
	parser *ParseUnitUseCase
}

// NewEditUnitUseCase creates a new EditUnitUseCase.
func NewEditUnitUseCase(parser *ParseUnitUseCase) *EditUnitUseCase {
	return &EditUnitUseCase{parser: parser}
}

// Apply returns an edited copy of file; file itself is not modified.
func (uc *EditUnitUseCase) Apply(file *entity.SystemdFile, in EditUnitInput) (*entity.SystemdFile, error) {
	out, err := cloneFile(file)
	if err != nil {
		return nil, err
	}

	if in.ExecStart != nil {
		out.Service.ExecStart = strings.Fields(*in.ExecStart)
		if len(out.Service.ExecStart) == 0 {
			out.Service.ExecStart = nil
		}
		ensureHead(&out.Service.Head, entity.SectionService)
	}
	if in.Description != nil {
		out.Unit.Description = strings.TrimSpace(*in.Description)
		ensureHead(&out.Unit.Head, entity.SectionUnit)
	}

	out.Unit.After = editList(out.Unit.After, in.AddAfter, in.RemoveAfter)
	out.Unit.Wants = editList(out.Unit.Wants, in.AddWants, in.RemoveWants)
	if len(in.AddAfter)+len(in.AddWants) > 0 {
		ensureHead(&out.Unit.Head, entity.SectionUnit)
	}

	out.Install.WantedBy = editList(out.Install.WantedBy, in.AddWantedBy, in.RemoveWantedBy)
	if len(in.AddWantedBy) > 0 {
		ensureHead(&out.Install.Head, entity.SectionInstall)
	}

	return out, nil
}

// Execute parses src, applies in and writes the rendered unit to dst.
// dst "-" writes to w instead of a file.
func (uc *EditUnitUseCase) Execute(ctx context.Context, src, dst string, in EditUnitInput, w io.Writer) (*entity.SystemdFile, error) {
	log := logging.FromContext(ctx)

	parsed, err := uc.parser.Execute(ctx, src)
	if err != nil {
		return nil, err
	}

	edited, err := uc.Apply(parsed.File, in)
	if err != nil {
		return nil, err
	}

	if dst == "" {
		dst = DefaultEditOutput
	}
	if dst == "-" {
		if _, err := edited.WriteTo(w); err != nil {
			return nil, fmt.Errorf("write unit: %w", err)
		}
		return edited, nil
	}

	if err := writeFileAtomic(dst, []byte(edited.String())); err != nil {
		return nil, err
	}
	log.Info().Str("src", src).Str("dst", dst).Msg("unit written")
	return edited, nil
}

// cloneFile deep-copies through the JSON form, the same shape the catalog stores.
func cloneFile(file *entity.SystemdFile) (*entity.SystemdFile, error) {
	if file == nil {
		return &entity.SystemdFile{}, nil
	}
	data, err := json.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("encode unit: %w", err)
	}
	var out entity.SystemdFile
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode unit: %w", err)
	}
	return &out, nil
}

func ensureHead(head *string, section string) {
	if *head == "" {
		*head = entity.SectionHead(section)
	}
}

// editList appends missing entries of add and drops every entry of remove.
func editList(list, add, remove []string) []string {
	for _, v := range add {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	if len(remove) > 0 {
		list = slices.DeleteFunc(list, func(v string) bool {
			return slices.Contains(remove, v)
		})
	}
	if len(list) == 0 {
		return nil
	}
	return list
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sysparse-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, editedFilePerm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
