package entity

import "fmt"

// Person is the record exchanged across the library boundary.
// Age fits in a single byte; Name is an owned copy.
type Person struct {
	Age  uint8  `json:"age"`
	Name string `json:"name"`
}

// NewPerson returns a zero-valued Person.
func NewPerson() Person {
	return Person{}
}

// WithName returns a copy of p with Name set.
func (p Person) WithName(name string) Person {
	p.Name = name
	return p
}

// WithAge returns a copy of p with Age set.
func (p Person) WithAge(age uint8) Person {
	p.Age = age
	return p
}

func (p Person) String() string {
	return fmt.Sprintf("{age: %d name: %s}", p.Age, p.Name)
}
