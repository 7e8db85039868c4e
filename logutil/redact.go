// Package logutil keeps personal data out of log lines.
package logutil

import (
	"regexp"
	"strings"

	"github.com/vortex-fintech/people/cpf"
)

// Formatted (529.982.247-25) or bare (52998224725) CPF-shaped digit runs.
// Boundaries are checked by hand: only a neighbouring digit disqualifies a
// match, so "cpf_52998224725" is still caught.
var cpfLike = regexp.MustCompile(`\d{3}\.?\d{3}\.?\d{3}-?\d{2}`)

// RedactCPF masks every CPF-shaped number inside free text, such as a
// backend error body, keeping only the last two digits of each. Longer
// digit runs (phone numbers, ids) are left alone.
func RedactCPF(s string) string {
	locs := cpfLike.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if digitAt(s, start-1) || digitAt(s, end) {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(cpf.Mask(s[start:end]))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

func digitAt(s string, i int) bool {
	return i >= 0 && i < len(s) && s[i] >= '0' && s[i] <= '9'
}
