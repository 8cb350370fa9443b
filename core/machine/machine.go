// core/machine/machine.go
package machine

import (
	"strings"
	"unicode"

	"enigma-core/alphabet"
	"enigma-core/enigmaerr"
	"enigma-core/perm"
	"enigma-core/rotor"
)

// Setting is one session set-up: rotor names left to right (reflector
// first), initial positions of the non-reflector rotors, and plugboard
// cycles (empty for no plugboard).
type Setting struct {
	Rotors    []string
	Positions string
	Plugboard string
}

// Machine wires a plugboard, numRotors slots and a reflector (slot 0) into
// one signal path. The rightmost pawls slots hold moving rotors.
//
// A Machine is not safe for concurrent use; each session builds its own.
type Machine struct {
	alpha     *alphabet.Alphabet
	numRotors int
	pawls     int
	catalog   *rotor.Catalog
	rotors    []*rotor.Rotor
	plugboard *perm.Permutation
	step      []bool
	ticks     int
}

// New returns a machine with 1 < numRotors slots and 0 <= pawls < numRotors.
// Rotors are drawn from catalog by InsertRotors.
func New(alpha *alphabet.Alphabet, numRotors, pawls int, catalog *rotor.Catalog) (*Machine, error) {
	if numRotors <= 1 {
		return nil, enigmaerr.Errorf("need more than one rotor slot, got %d", numRotors)
	}
	if pawls < 0 || pawls >= numRotors {
		return nil, enigmaerr.Errorf("pawls must be in [0, %d), got %d", numRotors, pawls)
	}
	return &Machine{
		alpha:     alpha,
		numRotors: numRotors,
		pawls:     pawls,
		catalog:   catalog,
		plugboard: perm.Identity(alpha),
		step:      make([]bool, numRotors),
	}, nil
}

func (m *Machine) NumRotors() int               { return m.numRotors }
func (m *Machine) NumPawls() int                { return m.pawls }
func (m *Machine) Alphabet() *alphabet.Alphabet { return m.alpha }
func (m *Machine) Plugboard() *perm.Permutation { return m.plugboard }
func (m *Machine) Ready() bool                  { return m.rotors != nil }

// Ticks counts the symbols converted since New.
func (m *Machine) Ticks() int { return m.ticks }

// Rotor returns the rotor in slot i, or nil before InsertRotors.
func (m *Machine) Rotor(i int) *rotor.Rotor {
	if m.rotors == nil || i < 0 || i >= len(m.rotors) {
		return nil
	}
	return m.rotors[i]
}

// InsertRotors fills the slots with copies of the named catalog rotors,
// names[0] being the reflector. All rotors start at setting 0. On error
// the previous slots are kept.
func (m *Machine) InsertRotors(names []string) error {
	if len(names) != m.numRotors {
		return enigmaerr.Errorf("wrong number of rotors: got %d, want %d", len(names), m.numRotors)
	}
	seen := make(map[string]bool, len(names))
	slots := make([]*rotor.Rotor, len(names))
	firstMoving := m.numRotors - m.pawls
	for i, name := range names {
		key := strings.ToUpper(name)
		if seen[key] {
			return enigmaerr.Errorf("rotor %s repeated", name)
		}
		seen[key] = true

		r, err := m.catalog.Get(name)
		if err != nil {
			return err
		}
		switch {
		case i == 0 && !r.Reflecting():
			return enigmaerr.Errorf("first rotor %s is not a reflector", r.Name())
		case i > 0 && r.Reflecting():
			return enigmaerr.Errorf("reflector %s in slot %d", r.Name(), i)
		case i >= firstMoving && !r.Rotates():
			return enigmaerr.Errorf("rotor %s in slot %d must be a moving rotor", r.Name(), i)
		case i > 0 && i < firstMoving && r.Rotates():
			return enigmaerr.Errorf("moving rotor %s in non-stepping slot %d", r.Name(), i)
		}
		slots[i] = r
	}
	m.rotors = slots
	return nil
}

// SetRotors sets the non-reflector rotors from positions, one symbol per
// rotor, leftmost first.
func (m *Machine) SetRotors(positions string) error {
	if m.rotors == nil {
		return enigmaerr.Errorf("no rotors inserted")
	}
	ps := []rune(positions)
	if len(ps) != m.numRotors-1 {
		return enigmaerr.Errorf("initial positions %q: want %d symbols, got %d", positions, m.numRotors-1, len(ps))
	}
	for _, c := range ps {
		if !m.alpha.Contains(c) {
			return enigmaerr.Errorf("initial position %q not in alphabet", c)
		}
	}
	for i, c := range ps {
		if err := m.rotors[i+1].SetChar(c); err != nil {
			return err
		}
	}
	return nil
}

// SetPlugboard installs p. Its alphabet must match the machine's.
func (m *Machine) SetPlugboard(p *perm.Permutation) error {
	if p.Size() != m.alpha.Size() {
		return enigmaerr.Errorf("plugboard size %d does not match alphabet size %d", p.Size(), m.alpha.Size())
	}
	m.plugboard = p
	return nil
}

// Setup applies s: insert rotors, set positions, install the plugboard.
func (m *Machine) Setup(s Setting) error {
	if err := m.InsertRotors(s.Rotors); err != nil {
		return err
	}
	if err := m.SetRotors(s.Positions); err != nil {
		return err
	}
	pb, err := perm.New(s.Plugboard, m.alpha)
	if err != nil {
		return err
	}
	return m.SetPlugboard(pb)
}

// Positions returns the current settings of the non-reflector rotors.
func (m *Machine) Positions() string {
	if m.rotors == nil {
		return ""
	}
	out := make([]rune, 0, m.numRotors-1)
	for _, r := range m.rotors[1:] {
		out = append(out, r.SettingChar())
	}
	return string(out)
}

// advance performs one stepping tick. Which rotors move is decided from
// the positions before the tick, and each rotor moves at most once: the
// rightmost always, and both members of every pair whose right rotor is
// at its notch (the double step).
func (m *Machine) advance() {
	if m.pawls == 0 {
		return
	}
	n := m.numRotors
	first := n - m.pawls
	for i := range m.step {
		m.step[i] = false
	}
	m.step[n-1] = true
	for i := n - 1; i > first; i-- {
		if m.rotors[i].AtNotch() && m.rotors[i-1].Rotates() {
			m.step[i] = true
			m.step[i-1] = true
		}
	}
	for i := first; i < n; i++ {
		if m.step[i] {
			m.rotors[i].Advance()
		}
	}
}

// Convert advances the machine and then encodes index c.
// InsertRotors must have succeeded first.
func (m *Machine) Convert(c int) int {
	if m.rotors == nil {
		panic("machine: Convert called before InsertRotors")
	}
	m.advance()
	m.ticks++
	c = m.plugboard.Permute(c)
	for i := m.numRotors - 1; i >= 0; i-- {
		c = m.rotors[i].ConvertForward(c)
	}
	for i := 1; i < m.numRotors; i++ {
		c = m.rotors[i].ConvertBackward(c)
	}
	return m.plugboard.Permute(c)
}

// ConvertString encodes msg symbol by symbol. Spaces are dropped unless
// the alphabet has them; other symbols outside the alphabet are copied
// through without stepping the rotors.
func (m *Machine) ConvertString(msg string) string {
	var sb strings.Builder
	sb.Grow(len(msg))
	for _, r := range msg {
		c, ok := m.normalize(r)
		if !ok {
			if r != ' ' {
				sb.WriteRune(r)
			}
			continue
		}
		i, _ := m.alpha.ToInt(c)
		out, _ := m.alpha.ToChar(m.Convert(i))
		sb.WriteRune(out)
	}
	return sb.String()
}

func (m *Machine) normalize(r rune) (rune, bool) {
	if m.alpha.Contains(r) {
		return r, true
	}
	if u := unicode.ToUpper(r); u != r && m.alpha.Contains(u) {
		return u, true
	}
	return r, false
}
