// internal/config/text.go
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"enigma-core/enigmaerr"
)

/* ------------------------------------------------------------------------
   Text format:

     ABCDEFGHIJKLMNOPQRSTUVWXYZ
     5 3
     I     MQ   (AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)
     Beta  N    (ALBEVFCYODJWUGNMQTZSKPR) (HIX)
     B     R    (AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP)
                (RX) (SZ) (TV)

   Line 1 is the alphabet. Then slot and pawl counts, then rotors:
   name, type (M<notches> | N | R) and cycles, which may continue on
   following lines.
   ------------------------------------------------------------------------ */

type token struct {
	text string
	line int
}

// ParseText reads the text format from r. name is used in error messages.
func ParseText(r io.Reader, name string) (*Config, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 1<<20)

	var (
		cfg    Config
		toks   []token
		ln     int
		gotAlp bool
	)
	for sc.Scan() {
		ln++
		line := sc.Text()
		if !gotAlp {
			if strings.TrimSpace(line) == "" {
				continue
			}
			cfg.Alphabet = strings.TrimSpace(line)
			gotAlp = true
			continue
		}
		for _, f := range strings.Fields(line) {
			toks = append(toks, token{text: f, line: ln})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !gotAlp {
		return nil, fmt.Errorf("%s: %w", name, enigmaerr.Errorf("configuration file truncated: no alphabet"))
	}

	pos := 0
	readInt := func(what string) (int, error) {
		if pos >= len(toks) {
			return 0, fmt.Errorf("%s:%d: %w", name, ln, enigmaerr.Errorf("configuration file truncated: missing %s", what))
		}
		t := toks[pos]
		pos++
		n, err := strconv.Atoi(t.text)
		if err != nil {
			return 0, fmt.Errorf("%s:%d: %w", name, t.line, enigmaerr.Errorf("bad %s %q", what, t.text))
		}
		return n, nil
	}
	var err error
	if cfg.NumRotors, err = readInt("rotor count"); err != nil {
		return nil, err
	}
	if cfg.Pawls, err = readInt("pawl count"); err != nil {
		return nil, err
	}

	for pos < len(toks) {
		nameTok := toks[pos]
		if strings.HasPrefix(nameTok.text, "(") {
			return nil, fmt.Errorf("%s:%d: %w", name, nameTok.line, enigmaerr.Errorf("bad rotor description: cycles %q without a rotor", nameTok.text))
		}
		if pos+1 >= len(toks) {
			return nil, fmt.Errorf("%s:%d: %w", name, nameTok.line, enigmaerr.Errorf("bad rotor description: %s has no type", nameTok.text))
		}
		typeTok := toks[pos+1]
		pos += 2

		spec := RotorSpec{Name: nameTok.text}
		switch {
		case strings.HasPrefix(typeTok.text, "M"):
			spec.Kind = KindMoving
			spec.Notches = typeTok.text[1:]
		case typeTok.text == "N":
			spec.Kind = KindFixed
		case typeTok.text == "R":
			spec.Kind = KindReflector
		default:
			return nil, fmt.Errorf("%s:%d: %w", name, typeTok.line, enigmaerr.Errorf("bad rotor description: %s has type %q", spec.Name, typeTok.text))
		}

		var cycles []string
		for pos < len(toks) && strings.HasPrefix(toks[pos].text, "(") {
			cycles = append(cycles, toks[pos].text)
			pos++
		}
		spec.Cycles = strings.Join(cycles, " ")
		cfg.Rotors = append(cfg.Rotors, spec)
	}
	if len(cfg.Rotors) == 0 {
		return nil, fmt.Errorf("%s: %w", name, enigmaerr.Errorf("configuration file truncated: no rotors"))
	}
	return &cfg, nil
}
