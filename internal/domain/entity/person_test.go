package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPerson_ReturnsZeroValue(t *testing.T) {
	p := NewPerson()

	assert.Equal(t, Person{}, p)
	assert.Equal(t, uint8(0), p.Age)
	assert.Empty(t, p.Name)
}

func TestPerson_WithersReturnCopies(t *testing.T) {
	base := NewPerson()

	mike := base.WithName("Mike").WithAge(22)
	older := mike.WithAge(43)

	assert.Equal(t, "Mike", mike.Name)
	assert.Equal(t, uint8(22), mike.Age)
	assert.Equal(t, uint8(43), older.Age)
	assert.Empty(t, base.Name, "original value must stay untouched")
}

func TestPerson_String(t *testing.T) {
	p := Person{Age: 255, Name: "Mike"}
	assert.Equal(t, "{age: 255 name: Mike}", p.String())
}
