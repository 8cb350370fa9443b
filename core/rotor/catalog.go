// core/rotor/catalog.go
package rotor

import (
	"strings"

	"enigma-core/enigmaerr"
)

// Catalog is the immutable pool of available rotors, keyed by name
// (case-insensitive). Machines never slot a catalog rotor directly; Get
// hands out a private copy at setting 0.
type Catalog struct {
	byName map[string]*Rotor
	order  []string
}

// NewCatalog indexes rotors by name. Two rotors with the same name are an error.
func NewCatalog(rotors ...*Rotor) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Rotor, len(rotors))}
	for _, r := range rotors {
		key := strings.ToUpper(r.name)
		if _, dup := c.byName[key]; dup {
			return nil, enigmaerr.Errorf("rotor %s defined more than once", r.name)
		}
		c.byName[key] = r
		c.order = append(c.order, r.name)
	}
	return c, nil
}

// Get returns a fresh copy of the named rotor with setting 0.
func (c *Catalog) Get(name string) (*Rotor, error) {
	r, ok := c.byName[strings.ToUpper(name)]
	if !ok {
		return nil, enigmaerr.Errorf("unknown rotor %q", name)
	}
	cp := r.Clone()
	cp.setting = 0
	return cp, nil
}

func (c *Catalog) Len() int { return len(c.order) }

// Names lists rotor names in definition order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Kinds counts catalog rotors per kind.
func (c *Catalog) Kinds() map[Kind]int {
	m := map[Kind]int{}
	for _, r := range c.byName {
		m[r.kind]++
	}
	return m
}
