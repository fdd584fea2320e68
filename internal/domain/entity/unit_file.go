package entity

import (
	"bytes"
	"io"
	"strings"
)

// Section names recognised by the unit model.
const (
	SectionUnit    = "Unit"
	SectionService = "Service"
	SectionInstall = "Install"
)

// Directive is a single Key=Value assignment kept verbatim.
type Directive struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UnitSection holds the [Unit] section of a unit file.
type UnitSection struct {
	Head          string      `json:"head"`
	Description   string      `json:"description"`
	Documentation []string    `json:"documentation,omitempty"`
	Requires      []string    `json:"requires,omitempty"`
	Wants         []string    `json:"wants,omitempty"`
	BindsTo       []string    `json:"bindsTo,omitempty"`
	After         []string    `json:"after,omitempty"`
	Before        []string    `json:"before,omitempty"`
	Conflicts     []string    `json:"conflicts,omitempty"`
	Conditions    []Directive `json:"condition,omitempty"`
	Asserts       []Directive `json:"assert,omitempty"`
	Extra         []Directive `json:"extra,omitempty"`
}

// ServiceSection holds the [Service] section of a unit file.
// ExecStart is the argv of the main command split on whitespace.
type ServiceSection struct {
	Head             string      `json:"head"`
	Type             string      `json:"type,omitempty"`
	User             string      `json:"user,omitempty"`
	Group            string      `json:"group,omitempty"`
	WorkingDirectory string      `json:"workingDirectory,omitempty"`
	Environment      []string    `json:"environment,omitempty"`
	EnvironmentFile  []string    `json:"environmentFile,omitempty"`
	ExecStartPre     []string    `json:"execStartPre,omitempty"`
	ExecStart        []string    `json:"execStart,omitempty"`
	ExecStartPost    []string    `json:"execStartPost,omitempty"`
	ExecReload       []string    `json:"execReload,omitempty"`
	ExecStop         []string    `json:"execStop,omitempty"`
	Restart          string      `json:"restart,omitempty"`
	RestartSec       string      `json:"restartSec,omitempty"`
	Extra            []Directive `json:"extra,omitempty"`
}

// InstallSection holds the [Install] section of a unit file.
type InstallSection struct {
	Head       string      `json:"head"`
	WantedBy   []string    `json:"wantedBy,omitempty"`
	RequiredBy []string    `json:"requiredBy,omitempty"`
	Alias      []string    `json:"alias,omitempty"`
	Also       []string    `json:"also,omitempty"`
	Extra      []Directive `json:"extra,omitempty"`
}

// Section is any section the model has no dedicated type for ([Timer], [X-Foo], ...).
type Section struct {
	Name       string      `json:"name"`
	Directives []Directive `json:"directives,omitempty"`
}

// SystemdFile is a parsed systemd unit file.
type SystemdFile struct {
	Unit    UnitSection    `json:"unit"`
	Service ServiceSection `json:"service"`
	Install InstallSection `json:"install"`
	Other   []Section      `json:"other,omitempty"`
}

// SectionHead returns the literal heading for a section name.
func SectionHead(name string) string {
	return "[" + name + "]"
}

// IsZero reports whether the section carries neither a heading nor values.
func (s *UnitSection) IsZero() bool {
	return s.Head == "" && s.Description == "" && len(s.Documentation) == 0 &&
		len(s.Requires) == 0 && len(s.Wants) == 0 && len(s.BindsTo) == 0 &&
		len(s.After) == 0 && len(s.Before) == 0 && len(s.Conflicts) == 0 &&
		len(s.Conditions) == 0 && len(s.Asserts) == 0 && len(s.Extra) == 0
}

// IsZero reports whether the section carries neither a heading nor values.
func (s *ServiceSection) IsZero() bool {
	return s.Head == "" && s.Type == "" && s.User == "" && s.Group == "" &&
		s.WorkingDirectory == "" && len(s.Environment) == 0 && len(s.EnvironmentFile) == 0 &&
		len(s.ExecStartPre) == 0 && len(s.ExecStart) == 0 && len(s.ExecStartPost) == 0 &&
		len(s.ExecReload) == 0 && len(s.ExecStop) == 0 && s.Restart == "" &&
		s.RestartSec == "" && len(s.Extra) == 0
}

// IsZero reports whether the section carries neither a heading nor values.
func (s *InstallSection) IsZero() bool {
	return s.Head == "" && len(s.WantedBy) == 0 && len(s.RequiredBy) == 0 &&
		len(s.Alias) == 0 && len(s.Also) == 0 && len(s.Extra) == 0
}

// ExecCommand returns the main command line joined back into a single string.
func (s *ServiceSection) ExecCommand() string {
	return strings.Join(s.ExecStart, " ")
}

// unitWriter accumulates rendered sections, separating them with blank lines.
type unitWriter struct {
	buf      bytes.Buffer
	sections int
}

func (w *unitWriter) head(name string) {
	if w.sections > 0 {
		w.buf.WriteByte('\n')
	}
	w.sections++
	w.buf.WriteString(SectionHead(name))
	w.buf.WriteByte('\n')
}

func (w *unitWriter) scalar(key, value string) {
	if value == "" {
		return
	}
	w.buf.WriteString(key)
	w.buf.WriteByte('=')
	w.buf.WriteString(value)
	w.buf.WriteByte('\n')
}

// joined writes a whitespace separated list on a single line.
func (w *unitWriter) joined(key string, values []string) {
	if len(values) == 0 {
		return
	}
	w.scalar(key, strings.Join(values, " "))
}

// lines writes one assignment per value.
func (w *unitWriter) lines(key string, values []string) {
	for _, v := range values {
		w.scalar(key, v)
	}
}

func (w *unitWriter) directives(ds []Directive) {
	for _, d := range ds {
		w.buf.WriteString(d.Key)
		w.buf.WriteByte('=')
		w.buf.WriteString(d.Value)
		w.buf.WriteByte('\n')
	}
}

// WriteTo renders the file back into unit file syntax.
func (f *SystemdFile) WriteTo(out io.Writer) (int64, error) {
	var w unitWriter

	if u := &f.Unit; !u.IsZero() {
		w.head(SectionUnit)
		w.scalar("Description", u.Description)
		w.joined("Documentation", u.Documentation)
		w.joined("Requires", u.Requires)
		w.joined("Wants", u.Wants)
		w.joined("BindsTo", u.BindsTo)
		w.joined("After", u.After)
		w.joined("Before", u.Before)
		w.joined("Conflicts", u.Conflicts)
		w.directives(u.Conditions)
		w.directives(u.Asserts)
		w.directives(u.Extra)
	}

	if s := &f.Service; !s.IsZero() {
		w.head(SectionService)
		w.scalar("Type", s.Type)
		w.scalar("User", s.User)
		w.scalar("Group", s.Group)
		w.scalar("WorkingDirectory", s.WorkingDirectory)
		w.lines("Environment", s.Environment)
		w.lines("EnvironmentFile", s.EnvironmentFile)
		w.lines("ExecStartPre", s.ExecStartPre)
		w.joined("ExecStart", s.ExecStart)
		w.lines("ExecStartPost", s.ExecStartPost)
		w.lines("ExecReload", s.ExecReload)
		w.lines("ExecStop", s.ExecStop)
		w.scalar("Restart", s.Restart)
		w.scalar("RestartSec", s.RestartSec)
		w.directives(s.Extra)
	}

	if i := &f.Install; !i.IsZero() {
		w.head(SectionInstall)
		w.joined("WantedBy", i.WantedBy)
		w.joined("RequiredBy", i.RequiredBy)
		w.joined("Alias", i.Alias)
		w.joined("Also", i.Also)
		w.directives(i.Extra)
	}

	for _, sec := range f.Other {
		w.head(sec.Name)
		w.directives(sec.Directives)
	}

	return w.buf.WriteTo(out)
}

func (f *SystemdFile) String() string {
	var sb strings.Builder
	_, _ = f.WriteTo(&sb)
	return sb.String()
}
