// internal/setting/setting.go
package setting

import (
	"strings"

	"enigma-core/enigmaerr"
	"enigma-core/machine"
)

// Marker starts every setting line.
const Marker = "*"

// IsSetting reports whether line is a setting line.
func IsSetting(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), Marker)
}

// Parse splits a setting line positionally:
//
//   - REFLECTOR R1 ... R(numRotors-1) POSITIONS [PLUGBOARD CYCLES...]
//
// The marker may be glued to the reflector name ("*B BETA ...").
func Parse(line string, numRotors int) (machine.Setting, error) {
	var s machine.Setting
	body := strings.TrimSpace(line)
	if !strings.HasPrefix(body, Marker) {
		return s, enigmaerr.Errorf("setting line must start with %q", Marker)
	}
	f := strings.Fields(strings.TrimPrefix(body, Marker))
	if len(f) < numRotors+1 {
		return s, enigmaerr.Errorf("setting line has %d fields, want %d rotor names and the positions", len(f), numRotors)
	}
	s.Rotors = append([]string(nil), f[:numRotors]...)
	s.Positions = f[numRotors]
	if strings.HasPrefix(s.Positions, "(") {
		return s, enigmaerr.Errorf("setting line is missing the rotor positions")
	}
	for _, tok := range f[numRotors+1:] {
		if !strings.HasPrefix(tok, "(") {
			return s, enigmaerr.Errorf("unexpected %q after positions; plugboard cycles look like (AB)", tok)
		}
	}
	s.Plugboard = strings.Join(f[numRotors+1:], " ")
	return s, nil
}

// Format renders s back into a setting line.
func Format(s machine.Setting) string {
	parts := make([]string, 0, len(s.Rotors)+3)
	parts = append(parts, Marker)
	parts = append(parts, s.Rotors...)
	parts = append(parts, s.Positions)
	if s.Plugboard != "" {
		parts = append(parts, s.Plugboard)
	}
	return strings.Join(parts, " ")
}
