// Command libsysparse builds the C archive exposing parser and new_person:
//
//	go build -buildmode=c-archive -o libsysparse.a ./cmd/libsysparse
package main

/*
#include "sysparse.h"
*/
import "C"

import "github.com/bnema/sysparse/pkg/sysparse"

//export parser
func parser() {
	sysparse.Parser()
}

// new_person returns {0, NULL}. A name assigned by the caller stays owned by the caller.
//
//export new_person
func new_person() C.Person {
	p := sysparse.NewPerson()
	return C.Person{age: C.uint8_t(p.Age), name: nil}
}

func main() {}
