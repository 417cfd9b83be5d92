package style

import (
	"fmt"
	"strings"
)

// JoinStyle selects how stroke corners are filled where edges meet.
type JoinStyle uint8

const (
	JoinMiter JoinStyle = iota
	JoinRound
	JoinBevel
)

var joinNames = [...]string{"miter", "round", "bevel"}

// String returns the lowercase name.
func (j JoinStyle) String() string {
	if int(j) < len(joinNames) {
		return joinNames[j]
	}
	return fmt.Sprintf("JoinStyle(%d)", j)
}

// MarshalText implements encoding.TextMarshaler.
func (j JoinStyle) MarshalText() ([]byte, error) {
	if int(j) >= len(joinNames) {
		return nil, fmt.Errorf("%w: join style %d", ErrInvalidConfig, j)
	}
	return []byte(j.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (j *JoinStyle) UnmarshalText(text []byte) error {
	v, err := ParseJoinStyle(string(text))
	if err != nil {
		return err
	}
	*j = v
	return nil
}

// ParseJoinStyle parses "miter", "round" or "bevel", ignoring case.
func ParseJoinStyle(s string) (JoinStyle, error) {
	for i, name := range joinNames {
		if strings.EqualFold(s, name) {
			return JoinStyle(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown join style %q", ErrInvalidConfig, s)
}

// CapStyle selects the shape of free stroke ends.
type CapStyle uint8

const (
	CapFlat CapStyle = iota
	CapRound
	CapSquare
)

var capNames = [...]string{"flat", "round", "square"}

// String returns the lowercase name.
func (c CapStyle) String() string {
	if int(c) < len(capNames) {
		return capNames[c]
	}
	return fmt.Sprintf("CapStyle(%d)", c)
}

// MarshalText implements encoding.TextMarshaler.
func (c CapStyle) MarshalText() ([]byte, error) {
	if int(c) >= len(capNames) {
		return nil, fmt.Errorf("%w: cap style %d", ErrInvalidConfig, c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CapStyle) UnmarshalText(text []byte) error {
	v, err := ParseCapStyle(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCapStyle parses "flat", "round" or "square", ignoring case.
// "butt" is accepted as an alias for flat.
func ParseCapStyle(s string) (CapStyle, error) {
	if strings.EqualFold(s, "butt") {
		return CapFlat, nil
	}
	for i, name := range capNames {
		if strings.EqualFold(s, name) {
			return CapStyle(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown cap style %q", ErrInvalidConfig, s)
}
