package deckfile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	godeck "github.com/VantageDataChat/GoDeck"
)

// Length is a distance as written in a deck file: a number with an optional
// unit suffix ("in", "pt", "cm", "mm" or "emu"). Bare numbers are inches.
// The text is kept as written and parsed by EMU.
type Length struct {
	raw string
}

// UnmarshalText records the length as written; validation happens in EMU.
func (l *Length) UnmarshalText(text []byte) error {
	l.raw = string(text)
	return nil
}

// MarshalText returns the length as written.
func (l Length) MarshalText() ([]byte, error) {
	return []byte(l.raw), nil
}

// IsZero reports whether the length was left out.
func (l Length) IsZero() bool { return strings.TrimSpace(l.raw) == "" }

// EMU converts the length to EMU. A missing length is zero.
func (l Length) EMU() (int64, error) {
	return ParseLength(l.raw)
}

var units = []struct {
	suffix string
	emu    float64
}{
	{"emu", 1},
	{"in", godeck.EMUPerInch},
	{"pt", godeck.EMUPerPoint},
	{"cm", godeck.EMUPerCentimeter},
	{"mm", godeck.EMUPerMillimeter},
}

// ParseLength converts strings such as "1.5in", "3pt", "2 cm" or "0.8" to EMU.
// Negative and non-finite values are rejected.
func ParseLength(s string) (int64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	scale := float64(godeck.EMUPerInch)
	number := s
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			scale = u.emu
			number = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("invalid length %q: must be a finite, non-negative number", s)
	}
	emu := v * scale
	if emu > math.MaxInt64/2 {
		return 0, fmt.Errorf("invalid length %q: too large", s)
	}
	return int64(math.Round(emu)), nil
}
