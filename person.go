package gohandoff

// Person is a labeled value whose debug form is a greeting.
type Person struct {
	label string
}

// NewPerson returns a Person for the given label.
func NewPerson(label string) Person {
	return Person{label: label}
}

// Label returns the label exactly as given to NewPerson.
func (p Person) Label() string {
	return p.label
}

// GoString is used by the %#v verb.
func (p Person) GoString() string {
	return "Bonjour " + p.label
}

func (p Person) String() string {
	return p.GoString()
}

// Sharable implements Sharable. Person has no mutators.
func (Person) Sharable() {}
