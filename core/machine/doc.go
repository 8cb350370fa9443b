// Package machine drives a rotor cipher machine.
//
// Signal path for one symbol, after the stepping tick:
//
//	plugboard → rotors right to left → reflector (slot 0)
//	          → rotors left to right → plugboard
//
// With identical starting positions the path is its own inverse, so the
// same call both encrypts and decrypts.
package machine
