package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitNameFromPath(t *testing.T) {
	assert.Equal(t, "nginx.service", UnitNameFromPath("/etc/systemd/system/nginx.service"))
	assert.Equal(t, "foo.timer", UnitNameFromPath(" foo.timer "))
}

func TestUnitRecord_Validate(t *testing.T) {
	assert.ErrorIs(t, (*UnitRecord)(nil).Validate(), ErrInvalidUnitRecord)
	assert.ErrorIs(t, (&UnitRecord{Name: "a.service"}).Validate(), ErrInvalidUnitRecord)
	assert.ErrorIs(t, (&UnitRecord{Name: "", File: &SystemdFile{}}).Validate(), ErrInvalidUnitRecord)
	assert.ErrorIs(t, (&UnitRecord{Name: "a/b.service", File: &SystemdFile{}}).Validate(), ErrInvalidUnitRecord)
	assert.NoError(t, (&UnitRecord{Name: "a.service", File: &SystemdFile{}}).Validate())
}
