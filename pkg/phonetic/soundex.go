// Package phonetic provides name normalization for sounds-like matching.
// The stored key columns and the query side must use the same Keyer so that
// names which sound alike produce equal keys.
package phonetic

import "strings"

// Keyer derives a phonetic key from a name. Implementations must be pure:
// equal inputs always produce equal keys.
type Keyer interface {
	Key(name string) string
}

// Soundex implements the classic four-character Soundex algorithm, matching
// the precomputed keys held on contact rows.
type Soundex struct{}

// soundexCodes maps A-Z to digit classes; 0 marks letters that are dropped.
var soundexCodes = [26]byte{
	// A  B    C    D    E  F    G    H  I  J    K    L    M
	0, '1', '2', '3', 0, '1', '2', 0, 0, '2', '2', '4', '5',
	// N   O  P    Q    R    S    T    U  V    W  X    Y  Z
	'5', 0, '1', '2', '6', '2', '3', 0, '1', 0, '2', 0, '2',
}

// Key returns the Soundex code of name, or "" when name contains no letters.
func (Soundex) Key(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))

	var first byte
	var prev byte
	var out []byte
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch < 'A' || ch > 'Z' {
			continue
		}
		code := soundexCodes[ch-'A']
		if first == 0 {
			first = ch
			out = append(out, ch)
			prev = code
			continue
		}
		// H and W are transparent: they neither emit a digit nor break a
		// run of identical codes.
		if ch == 'H' || ch == 'W' {
			continue
		}
		if code == 0 {
			prev = 0
			continue
		}
		if code != prev {
			out = append(out, code)
			if len(out) == 4 {
				break
			}
		}
		prev = code
	}

	if first == 0 {
		return ""
	}
	for len(out) < 4 {
		out = append(out, '0')
	}
	return string(out)
}
