// Package cpf formats and validates Brazilian individual taxpayer numbers (CPF).
//
// All functions work on the digit content of the input only: punctuation,
// spaces and any other non-digit characters are ignored, so user keystrokes,
// formatted values and raw digits are interchangeable.
package cpf

import (
	"strings"

	errs "github.com/vortex-fintech/people/errors"
)

// Length is the number of digits in a complete CPF.
const Length = 11

const (
	baseLength = 9
	maskRune   = '*'
)

// ReasonInvalid is the validation reason reported for malformed CPF values.
const ReasonInvalid = "invalid_cpf"

// Digits strips every non-digit character and keeps at most the first 11 digits.
//
//	"529.982.247-25" -> "52998224725"
//	"529982247250000" -> "52998224725"
func Digits(s string) string {
	d := onlyDigits(s)
	if len(d) > Length {
		d = d[:Length]
	}
	return d
}

// Format punctuates the digit content of s progressively:
//
//	"529"         -> "529"
//	"5299"        -> "529.9"
//	"5299822"     -> "529.982.2"
//	"5299822472"  -> "529.982.247-2"
//	"52998224725" -> "529.982.247-25"
func Format(s string) string {
	d := Digits(s)
	n := len(d)

	switch {
	case n <= 3:
		return d
	case n <= 6:
		return d[:3] + "." + d[3:]
	case n <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// IsValid reports whether the digits of s form a CPF with correct check digits.
// Inputs with anything other than exactly 11 digits, and repeated-digit
// sequences such as "00000000000", are invalid.
func IsValid(s string) bool {
	d := onlyDigits(s)
	if len(d) != Length || allSame(d) {
		return false
	}
	check, ok := CheckDigits(d[:baseLength])
	if !ok {
		return false
	}
	return d[baseLength:] == check
}

// CheckDigits computes the two verifier digits for a 9-digit base number.
// It returns false when base is not exactly 9 ASCII digits.
func CheckDigits(base string) (string, bool) {
	if len(base) != baseLength || !isDigits(base) {
		return "", false
	}
	first := verifier(base, 10)
	second := verifier(base+string(rune('0'+first)), 11)
	return string([]byte{byte('0' + first), byte('0' + second)}), true
}

// Mask hides every digit except the last two while keeping the formatted
// layout, for use in logs and other places where the full number must not leak.
//
//	"52998224725" -> "***.***.***-25"
//	"5299822"     -> "***.**2.2"
func Mask(s string) string {
	f := Format(s)
	if f == "" {
		return ""
	}

	total := len(Digits(s))
	keep := 2
	if total <= 2 {
		keep = 0
	}

	b := []byte(f)
	seen := 0
	for i := len(b) - 1; i >= 0; i-- {
		if isDigit(b[i]) {
			seen++
			if seen > keep {
				b[i] = maskRune
			}
		}
	}
	return string(b)
}

// verifier runs the weighted mod-11 sum with weights descending from
// startWeight down to 2 over all digits of d.
func verifier(d string, startWeight int) int {
	sum := 0
	for i := 0; i < len(d); i++ {
		sum += int(d[i]-'0') * (startWeight - i)
	}
	v := 11 - sum%11
	if v >= 10 {
		return 0
	}
	return v
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// CPF is a validated 11-digit CPF. The zero value is not valid.
type CPF struct {
	digits string
}

// Parse validates s and returns its CPF. Formatting characters are accepted.
func Parse(s string) (CPF, error) {
	d := onlyDigits(s)
	if !IsValid(d) {
		return CPF{}, errs.NewDomainError("cpf", ReasonInvalid)
	}
	return CPF{digits: d}, nil
}

func (c CPF) Digits() string { return c.digits }
func (c CPF) String() string { return Format(c.digits) }
