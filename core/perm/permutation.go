// core/perm/permutation.go
package perm

import (
	"strings"
	"unicode"

	"enigma-core/alphabet"
	"enigma-core/enigmaerr"
)

/* ------------------------------------------------------------------------
   A Permutation is parsed once from cycle notation "(ABC) (DE)" into two
   index tables: fwd[i] is the successor of i in its cycle, inv[i] the
   predecessor. Symbols in no cycle are fixed points in both tables.
   ------------------------------------------------------------------------ */

type Permutation struct {
	alpha   *alphabet.Alphabet
	fwd     []int
	inv     []int
	inCycle []bool
	cycles  [][]int
}

// New parses cycles over alpha. Whitespace between cycles is ignored.
func New(cycles string, alpha *alphabet.Alphabet) (*Permutation, error) {
	p := Identity(alpha)
	parsed, err := parseCycles(cycles, alpha)
	if err != nil {
		return nil, err
	}
	for _, c := range parsed {
		if err := p.add(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Identity returns the permutation with no cycles.
func Identity(alpha *alphabet.Alphabet) *Permutation {
	n := alpha.Size()
	p := &Permutation{
		alpha:   alpha,
		fwd:     make([]int, n),
		inv:     make([]int, n),
		inCycle: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		p.fwd[i] = i
		p.inv[i] = i
	}
	return p
}

// AddCycle adds one parenthesized cycle such as "(XYZ)". A symbol that
// already belongs to a cycle, or repeats inside the new one, is rejected.
func (p *Permutation) AddCycle(cycle string) error {
	parsed, err := parseCycles(cycle, p.alpha)
	if err != nil {
		return err
	}
	if len(parsed) != 1 {
		return enigmaerr.Errorf("expected exactly one cycle, got %d in %q", len(parsed), cycle)
	}
	return p.add(parsed[0])
}

func (p *Permutation) add(c []int) error {
	for _, i := range c {
		if p.inCycle[i] {
			r, _ := p.alpha.ToChar(i)
			return enigmaerr.Errorf("symbol %q appears in more than one cycle", r)
		}
	}
	n := len(c)
	for k, i := range c {
		next := c[(k+1)%n]
		p.fwd[i] = next
		p.inv[next] = i
		p.inCycle[i] = true
	}
	p.cycles = append(p.cycles, c)
	return nil
}

func parseCycles(text string, alpha *alphabet.Alphabet) ([][]int, error) {
	var (
		out  [][]int
		cur  []int
		open bool
		seen = map[int]bool{}
	)
	for _, r := range text {
		switch {
		case r == '(' && !alpha.Contains(r):
			if open {
				return nil, enigmaerr.Errorf("nested '(' in cycles %q", text)
			}
			open = true
			cur = nil
		case r == ')' && !alpha.Contains(r):
			if !open {
				return nil, enigmaerr.Errorf("unbalanced ')' in cycles %q", text)
			}
			if len(cur) == 0 {
				return nil, enigmaerr.Errorf("empty cycle in %q", text)
			}
			out = append(out, cur)
			open = false
		case !open:
			if unicode.IsSpace(r) {
				continue
			}
			return nil, enigmaerr.Errorf("unexpected %q outside a cycle in %q", r, text)
		default:
			i, err := alpha.ToInt(r)
			if err != nil {
				return nil, enigmaerr.Errorf("cycle symbol %q not in alphabet", r)
			}
			if seen[i] {
				return nil, enigmaerr.Errorf("symbol %q repeated in cycles %q", r, text)
			}
			seen[i] = true
			cur = append(cur, i)
		}
	}
	if open {
		return nil, enigmaerr.Errorf("unbalanced '(' in cycles %q", text)
	}
	return out, nil
}

func (p *Permutation) Size() int { return len(p.fwd) }

func (p *Permutation) Alphabet() *alphabet.Alphabet { return p.alpha }

// Wrap reduces i modulo Size into [0, Size).
func (p *Permutation) Wrap(i int) int {
	r := i % len(p.fwd)
	if r < 0 {
		r += len(p.fwd)
	}
	return r
}

// Permute returns the image of index i (taken modulo Size).
func (p *Permutation) Permute(i int) int { return p.fwd[p.Wrap(i)] }

// Invert returns the preimage of index i (taken modulo Size).
func (p *Permutation) Invert(i int) int { return p.inv[p.Wrap(i)] }

// PermuteChar maps a symbol; symbols outside the alphabet map to themselves.
func (p *Permutation) PermuteChar(r rune) rune { return p.mapChar(r, p.fwd) }

// InvertChar is PermuteChar for the inverse permutation.
func (p *Permutation) InvertChar(r rune) rune { return p.mapChar(r, p.inv) }

func (p *Permutation) mapChar(r rune, table []int) rune {
	i, err := p.alpha.ToInt(r)
	if err != nil {
		return r
	}
	out, _ := p.alpha.ToChar(table[i])
	return out
}

// Derangement reports whether no symbol maps to itself.
func (p *Permutation) Derangement() bool {
	for i, j := range p.fwd {
		if i == j {
			return false
		}
	}
	return true
}

// String renders the cycles in the order they were added, e.g. "(AB) (CD)".
func (p *Permutation) String() string {
	var sb strings.Builder
	for k, c := range p.cycles {
		if k > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('(')
		for _, i := range c {
			r, _ := p.alpha.ToChar(i)
			sb.WriteRune(r)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
