package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemdFile_String_RendersKnownSectionsInOrder(t *testing.T) {
	f := &SystemdFile{
		Unit: UnitSection{
			Head:        "[Unit]",
			Description: "Example daemon",
			After:       []string{"network.target", "syslog.target"},
			Conditions:  []Directive{{Key: "ConditionPathExists", Value: "/etc/example"}},
		},
		Service: ServiceSection{
			Head:      "[Service]",
			Type:      "simple",
			ExecStart: []string{"/usr/bin/example", "--serve"},
			ExecStop:  []string{"/bin/kill -TERM $MAINPID"},
		},
		Install: InstallSection{
			Head:     "[Install]",
			WantedBy: []string{"multi-user.target"},
		},
	}

	want := "[Unit]\n" +
		"Description=Example daemon\n" +
		"After=network.target syslog.target\n" +
		"ConditionPathExists=/etc/example\n" +
		"\n" +
		"[Service]\n" +
		"Type=simple\n" +
		"ExecStart=/usr/bin/example --serve\n" +
		"ExecStop=/bin/kill -TERM $MAINPID\n" +
		"\n" +
		"[Install]\n" +
		"WantedBy=multi-user.target\n"

	assert.Equal(t, want, f.String())
}

func TestSystemdFile_String_SkipsEmptySections(t *testing.T) {
	f := &SystemdFile{
		Service: ServiceSection{ExecStart: []string{"/bin/true"}},
		Other:   []Section{{Name: "X-Extra", Directives: []Directive{{Key: "Foo", Value: ""}}}},
	}

	assert.Equal(t, "[Service]\nExecStart=/bin/true\n\n[X-Extra]\nFoo=\n", f.String())
}

func TestSystemdFile_String_Empty(t *testing.T) {
	assert.Empty(t, (&SystemdFile{}).String())
}

func TestServiceSection_ExecCommand(t *testing.T) {
	s := ServiceSection{ExecStart: []string{"/usr/bin/app", "-v"}}
	assert.Equal(t, "/usr/bin/app -v", s.ExecCommand())
}
