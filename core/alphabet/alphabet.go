// core/alphabet/alphabet.go
package alphabet

import (
	"errors"
	"fmt"

	"enigma-core/enigmaerr"
)

// Upper is the default alphabet of the historical machines.
const Upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrNotFound is matched by every *LookupError.
var ErrNotFound = errors.New("symbol not in alphabet")

// LookupError reports a symbol or index outside the alphabet.
type LookupError struct {
	Symbol rune
	Index  int
	ByRune bool
}

func (e *LookupError) Error() string {
	if e.ByRune {
		return fmt.Sprintf("symbol %q not in alphabet", e.Symbol)
	}
	return fmt.Sprintf("index %d out of range", e.Index)
}

func (e *LookupError) Is(target error) bool { return target == ErrNotFound }

// Alphabet is an ordered set of unique symbols, each with a dense index.
// It is immutable once built and safe to share.
type Alphabet struct {
	chars []rune
	index map[rune]int
}

// New builds an alphabet from chars. A repeated symbol is a configuration error.
func New(chars string) (*Alphabet, error) {
	rs := []rune(chars)
	if len(rs) == 0 {
		return nil, enigmaerr.Errorf("empty alphabet")
	}
	idx := make(map[rune]int, len(rs))
	for i, r := range rs {
		if _, dup := idx[r]; dup {
			return nil, enigmaerr.Errorf("duplicate symbol %q in alphabet", r)
		}
		idx[r] = i
	}
	return &Alphabet{chars: rs, index: idx}, nil
}

// Default returns the A-Z alphabet.
func Default() *Alphabet {
	a, _ := New(Upper)
	return a
}

func (a *Alphabet) Size() int { return len(a.chars) }

func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// ToChar returns the symbol at index i.
func (a *Alphabet) ToChar(i int) (rune, error) {
	if i < 0 || i >= len(a.chars) {
		return 0, &LookupError{Index: i}
	}
	return a.chars[i], nil
}

// ToInt returns the index of r. Callers that have not checked Contains
// must handle the *LookupError.
func (a *Alphabet) ToInt(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return -1, &LookupError{Symbol: r, ByRune: true}
	}
	return i, nil
}

// String returns the symbols in index order.
func (a *Alphabet) String() string { return string(a.chars) }
