// core/rotor/rotor.go
package rotor

import (
	"fmt"

	"enigma-core/alphabet"
	"enigma-core/enigmaerr"
	"enigma-core/perm"
)

// Kind tags the rotor variant. Behavior is dispatched on it.
type Kind uint8

const (
	Moving Kind = iota
	Fixed
	Reflector
)

func (k Kind) String() string {
	switch k {
	case Moving:
		return "moving"
	case Fixed:
		return "fixed"
	case Reflector:
		return "reflector"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Rotor is one wheel: a fixed wiring plus a rotational setting.
// Only Moving rotors carry notches.
type Rotor struct {
	name    string
	kind    Kind
	perm    *perm.Permutation
	notches []int
	setting int
}

// NewMoving builds a stepping rotor whose notches are the symbols in notches.
func NewMoving(name string, p *perm.Permutation, notches string) (*Rotor, error) {
	r := &Rotor{name: name, kind: Moving, perm: p}
	a := p.Alphabet()
	for _, c := range notches {
		i, err := a.ToInt(c)
		if err != nil {
			return nil, enigmaerr.Errorf("rotor %s: notch %q not in alphabet", name, c)
		}
		r.notches = append(r.notches, i)
	}
	return r, nil
}

// NewFixed builds a rotor that never steps.
func NewFixed(name string, p *perm.Permutation) *Rotor {
	return &Rotor{name: name, kind: Fixed, perm: p}
}

// NewReflector builds a reflector. Its wiring must have no fixed points.
func NewReflector(name string, p *perm.Permutation) (*Rotor, error) {
	if !p.Derangement() {
		return nil, enigmaerr.Errorf("reflector %s: permutation has fixed points", name)
	}
	return &Rotor{name: name, kind: Reflector, perm: p}, nil
}

func (r *Rotor) Name() string                   { return r.name }
func (r *Rotor) Kind() Kind                     { return r.kind }
func (r *Rotor) Permutation() *perm.Permutation { return r.perm }
func (r *Rotor) Alphabet() *alphabet.Alphabet   { return r.perm.Alphabet() }
func (r *Rotor) Size() int                      { return r.perm.Size() }
func (r *Rotor) Setting() int                   { return r.setting }
func (r *Rotor) Rotates() bool                  { return r.kind == Moving }
func (r *Rotor) Reflecting() bool               { return r.kind == Reflector }

// Notches returns the notch symbols in configuration order.
func (r *Rotor) Notches() string {
	out := make([]rune, 0, len(r.notches))
	for _, i := range r.notches {
		c, _ := r.Alphabet().ToChar(i)
		out = append(out, c)
	}
	return string(out)
}

// AtNotch reports whether the current setting is one of the notches.
// Fixed rotors and reflectors are never at a notch.
func (r *Rotor) AtNotch() bool {
	if r.kind != Moving {
		return false
	}
	for _, n := range r.notches {
		if n == r.setting {
			return true
		}
	}
	return false
}

// Advance steps a moving rotor by one position. Other kinds do not move.
func (r *Rotor) Advance() {
	if r.kind != Moving {
		return
	}
	r.setting = r.perm.Wrap(r.setting + 1)
}

// Set assigns the setting directly, modulo the alphabet size.
func (r *Rotor) Set(setting int) { r.setting = r.perm.Wrap(setting) }

// SetChar assigns the setting whose symbol is c.
func (r *Rotor) SetChar(c rune) error {
	i, err := r.Alphabet().ToInt(c)
	if err != nil {
		return enigmaerr.Errorf("rotor %s: position %q not in alphabet", r.name, c)
	}
	r.setting = i
	return nil
}

// SettingChar returns the symbol of the current setting.
func (r *Rotor) SettingChar() rune {
	c, _ := r.Alphabet().ToChar(r.setting)
	return c
}

// ConvertForward maps contact p right-to-left through the rotor at its
// current setting.
func (r *Rotor) ConvertForward(p int) int {
	return r.perm.Wrap(r.perm.Permute(p+r.setting) - r.setting)
}

// ConvertBackward maps contact e left-to-right (the inverse direction).
func (r *Rotor) ConvertBackward(e int) int {
	return r.perm.Wrap(r.perm.Invert(e+r.setting) - r.setting)
}

// Clone returns a copy with its own setting. Wiring is shared read-only.
func (r *Rotor) Clone() *Rotor {
	c := *r
	return &c
}

func (r *Rotor) String() string {
	return fmt.Sprintf("%s(%s@%c)", r.name, r.kind, r.SettingChar())
}
