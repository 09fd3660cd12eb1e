package life

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Rule is an outer-totalistic rule over the Moore neighbourhood. Bit n of
// Birth (Survive) is set when a dead (live) cell with n live neighbours is
// alive in the next generation.
type Rule struct {
	Birth   uint16
	Survive uint16
}

// Conway is B3/S23.
var Conway = Rule{Birth: 1 << 3, Survive: 1<<2 | 1<<3}

// ErrBadRule reports a rule string that is not in B/S notation.
var ErrBadRule = errors.New("rule must look like B3/S23")

// Next applies the rule to one cell.
func (r Rule) Next(alive bool, neighbours int) bool {
	if alive {
		return r.Survive&(1<<neighbours) != 0
	}
	return r.Birth&(1<<neighbours) != 0
}

// String formats the rule in B/S notation.
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	for n := 0; n <= 8; n++ {
		if r.Birth&(1<<n) != 0 {
			sb.WriteByte(byte('0' + n))
		}
	}
	sb.WriteString("/S")
	for n := 0; n <= 8; n++ {
		if r.Survive&(1<<n) != 0 {
			sb.WriteByte(byte('0' + n))
		}
	}
	return sb.String()
}

// ParseRule parses B/S notation such as "B3/S23" or "b36/s23".
func ParseRule(s string) (Rule, error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "B") || !strings.HasPrefix(parts[1], "S") {
		return Rule{}, fmt.Errorf("parse %q: %w", s, ErrBadRule)
	}
	var r Rule
	var err error
	if r.Birth, err = parseCounts(parts[0][1:]); err != nil {
		return Rule{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if r.Survive, err = parseCounts(parts[1][1:]); err != nil {
		return Rule{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return r, nil
}

func parseCounts(digits string) (uint16, error) {
	var mask uint16
	for _, c := range digits {
		if c < '0' || c > '8' {
			return 0, fmt.Errorf("neighbour count %q: %w", c, ErrBadRule)
		}
		mask |= 1 << (c - '0')
	}
	return mask, nil
}

var rules = map[string]Rule{
	"life":     Conway,
	"highlife": {Birth: 1<<3 | 1<<6, Survive: 1<<2 | 1<<3},
	"seeds":    {Birth: 1 << 2},
	"daynight": {Birth: 1<<3 | 1<<6 | 1<<7 | 1<<8, Survive: 1<<3 | 1<<4 | 1<<6 | 1<<7 | 1<<8},
}

// Rules returns the names of the built-in rules in sorted order.
func Rules() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupRule resolves a built-in rule name or a B/S rule string.
func LookupRule(name string) (Rule, error) {
	if r, ok := rules[strings.ToLower(name)]; ok {
		return r, nil
	}
	return ParseRule(name)
}
