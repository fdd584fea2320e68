// Package systemd parses systemd unit files into entity.SystemdFile values.
package systemd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/sysparse/internal/domain/entity"
)

const (
	initialBufferSize = 64 * 1024
	maxLineSize       = 1024 * 1024
)

// Option tunes parser behaviour.
type Option func(*options)

type options struct {
	strict bool
}

// WithStrict makes sections other than [Unit], [Service] and [Install] a parse error.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// parser holds the state of a single Parse call.
type parser struct {
	opts    options
	file    *entity.SystemdFile
	section string
	other   *entity.Section
}

// Parse reads a unit file from r.
//
// Comment lines (# or ;) and blank lines are skipped, an odd run of trailing
// backslashes joins the next line, list directives accumulate across repeated
// keys and an empty assignment resets them.
func Parse(r io.Reader, opts ...Option) (*entity.SystemdFile, error) {
	p := &parser{file: &entity.SystemdFile{}}
	for _, opt := range opts {
		opt(&p.opts)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, initialBufferSize), maxLineSize)

	var (
		pending    strings.Builder
		continuing bool
		start      int
		lineNo     int
	)

	for sc.Scan() {
		lineNo++
		raw := strings.TrimSpace(sc.Text())

		if continuing {
			if isComment(raw) {
				continue
			}
		} else {
			if raw == "" || isComment(raw) {
				continue
			}
			start = lineNo
		}

		if continues(raw) {
			pending.WriteString(strings.TrimSpace(strings.TrimSuffix(raw, `\`)))
			pending.WriteByte(' ')
			continuing = true
			continue
		}

		pending.WriteString(raw)
		if err := p.line(start, strings.TrimSpace(pending.String())); err != nil {
			return nil, err
		}
		pending.Reset()
		continuing = false
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read unit file: %w", err)
	}

	if continuing {
		if err := p.line(start, strings.TrimSpace(pending.String())); err != nil {
			return nil, err
		}
	}

	return p.file, nil
}

// ParseString parses unit file content held in memory.
func ParseString(content string, opts ...Option) (*entity.SystemdFile, error) {
	return Parse(strings.NewReader(content), opts...)
}

// ParseFile opens and parses the unit file at path.
func ParseFile(path string, opts ...Option) (*entity.SystemdFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open unit file: %w", err)
	}
	defer f.Close()

	file, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// continues reports whether line ends in an odd number of backslashes.
// An even run is an escaped backslash and stays part of the value.
func continues(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";")
}

func (p *parser) line(num int, text string) error {
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "[") {
		return p.header(num, text)
	}

	key, value, ok := strings.Cut(text, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return &ParseError{Line: num, Text: text, Err: ErrMissingAssignment}
	}
	value = strings.TrimSpace(value)

	switch p.section {
	case "":
		return &ParseError{Line: num, Text: text, Err: ErrOutsideSection}
	case entity.SectionUnit:
		p.unit(key, value)
	case entity.SectionService:
		p.service(key, value)
	case entity.SectionInstall:
		p.install(key, value)
	default:
		p.other.Directives = append(p.other.Directives, entity.Directive{Key: key, Value: value})
	}
	return nil
}

func (p *parser) header(num int, text string) error {
	if !strings.HasSuffix(text, "]") {
		return &ParseError{Line: num, Text: text, Err: ErrMalformedHeader}
	}
	name := strings.TrimSpace(text[1 : len(text)-1])
	if name == "" {
		return &ParseError{Line: num, Text: text, Err: ErrMalformedHeader}
	}

	p.section = name
	p.other = nil

	switch name {
	case entity.SectionUnit:
		p.file.Unit.Head = entity.SectionHead(name)
	case entity.SectionService:
		p.file.Service.Head = entity.SectionHead(name)
	case entity.SectionInstall:
		p.file.Install.Head = entity.SectionHead(name)
	default:
		if p.opts.strict {
			return &ParseError{Line: num, Text: text, Err: ErrUnknownSection}
		}
		for i := range p.file.Other {
			if p.file.Other[i].Name == name {
				p.other = &p.file.Other[i]
				return nil
			}
		}
		p.file.Other = append(p.file.Other, entity.Section{Name: name})
		p.other = &p.file.Other[len(p.file.Other)-1]
	}
	return nil
}

func (p *parser) unit(key, value string) {
	u := &p.file.Unit
	switch key {
	case "Description":
		u.Description = value
	case "Documentation":
		appendFields(&u.Documentation, value)
	case "Requires":
		appendFields(&u.Requires, value)
	case "Wants":
		appendFields(&u.Wants, value)
	case "BindsTo":
		appendFields(&u.BindsTo, value)
	case "After":
		appendFields(&u.After, value)
	case "Before":
		appendFields(&u.Before, value)
	case "Conflicts":
		appendFields(&u.Conflicts, value)
	default:
		switch {
		case strings.HasPrefix(key, "Condition"):
			appendDirective(&u.Conditions, key, value)
		case strings.HasPrefix(key, "Assert"):
			appendDirective(&u.Asserts, key, value)
		default:
			u.Extra = append(u.Extra, entity.Directive{Key: key, Value: value})
		}
	}
}

func (p *parser) service(key, value string) {
	s := &p.file.Service
	switch key {
	case "Type":
		s.Type = value
	case "User":
		s.User = value
	case "Group":
		s.Group = value
	case "WorkingDirectory":
		s.WorkingDirectory = value
	case "Restart":
		s.Restart = value
	case "RestartSec":
		s.RestartSec = value
	case "Environment":
		appendLine(&s.Environment, value)
	case "EnvironmentFile":
		appendLine(&s.EnvironmentFile, value)
	case "ExecStartPre":
		appendLine(&s.ExecStartPre, value)
	case "ExecStart":
		// The main command is kept as argv; a later assignment replaces it.
		s.ExecStart = strings.Fields(value)
		if len(s.ExecStart) == 0 {
			s.ExecStart = nil
		}
	case "ExecStartPost":
		appendLine(&s.ExecStartPost, value)
	case "ExecReload":
		appendLine(&s.ExecReload, value)
	case "ExecStop":
		appendLine(&s.ExecStop, value)
	default:
		s.Extra = append(s.Extra, entity.Directive{Key: key, Value: value})
	}
}

func (p *parser) install(key, value string) {
	i := &p.file.Install
	switch key {
	case "WantedBy":
		appendFields(&i.WantedBy, value)
	case "RequiredBy":
		appendFields(&i.RequiredBy, value)
	case "Alias":
		appendFields(&i.Alias, value)
	case "Also":
		appendFields(&i.Also, value)
	default:
		i.Extra = append(i.Extra, entity.Directive{Key: key, Value: value})
	}
}

// appendFields adds whitespace separated values; an empty value resets the list.
func appendFields(dst *[]string, value string) {
	if value == "" {
		*dst = nil
		return
	}
	*dst = append(*dst, strings.Fields(value)...)
}

// appendLine adds the whole value as one entry; an empty value resets the list.
func appendLine(dst *[]string, value string) {
	if value == "" {
		*dst = nil
		return
	}
	*dst = append(*dst, value)
}

func appendDirective(dst *[]entity.Directive, key, value string) {
	if value == "" {
		*dst = nil
		return
	}
	*dst = append(*dst, entity.Directive{Key: key, Value: value})
}
