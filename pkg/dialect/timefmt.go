package dialect

import (
	"sort"
	"strings"
)

// Time-format strings move through the engine in canonical strftime form:
// the parser converts a source dialect's tokens to strftime, and the
// generator converts strftime back to the target dialect's tokens. Both
// directions match longest-token-first so "yyyy" wins over "yy".

// ToStrftime converts a format string written in this dialect's time
// tokens into canonical strftime tokens.
func (d *Dialect) ToStrftime(format string) string {
	if len(d.timeMapping) == 0 {
		return format
	}
	pairs := append([]TimePair(nil), d.timeMapping...)
	sort.SliceStable(pairs, func(i, j int) bool {
		return len(pairs[i].Token) > len(pairs[j].Token)
	})
	return replaceTokens(format, pairs, func(p TimePair) (string, string) {
		return p.Token, p.Strftime
	})
}

// FromStrftime converts a canonical strftime format string into this
// dialect's time tokens. Unmapped strftime tokens are left as-is.
func (d *Dialect) FromStrftime(format string) string {
	if len(d.timeMapping) == 0 {
		return format
	}
	pairs := append([]TimePair(nil), d.timeMapping...)
	sort.SliceStable(pairs, func(i, j int) bool {
		return len(pairs[i].Strftime) > len(pairs[j].Strftime)
	})
	return replaceTokens(format, pairs, func(p TimePair) (string, string) {
		return p.Strftime, p.Token
	})
}

// replaceTokens scans format left to right, replacing the first matching
// token at each position. Non-matching bytes are copied through.
func replaceTokens(format string, pairs []TimePair, sides func(TimePair) (from, to string)) string {
	var sb strings.Builder
	sb.Grow(len(format))
	for i := 0; i < len(format); {
		matched := false
		for _, p := range pairs {
			from, to := sides(p)
			if from != "" && strings.HasPrefix(format[i:], from) {
				sb.WriteString(to)
				i += len(from)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(format[i])
			i++
		}
	}
	return sb.String()
}
