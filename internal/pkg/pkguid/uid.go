package pkguid

import (
	"fmt"
	"strconv"
	"strings"
)

// StringID generates unique string identifiers.
type StringID interface {
	// Generate generates a unique identifier as a string.
	Generate() string
}

// NumberID generates unique numeric identifiers.
type NumberID interface {
	// Generate generates a unique identifier as a uint64 number.
	Generate() int64
}

// Strategies accepted by NewStringID.
const (
	StrategyUUID      = "uuid"
	StrategySnowflake = "snowflake"
)

// NewStringID returns the StringID generator for the named strategy. An empty
// strategy selects UUID. node is the snowflake node ID and is ignored by the
// other strategies; pass RandomNode to let NewSnowflake pick one.
func NewStringID(strategy string, node int64) (StringID, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategyUUID:
		return NewUUID(), nil
	case StrategySnowflake:
		sf, err := NewSnowflake(node)
		if err != nil {
			return nil, err
		}
		return Decimal{gen: sf}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}

// Decimal adapts a NumberID into a StringID by formatting in base 10.
type Decimal struct {
	gen NumberID
}

// NewDecimal wraps gen.
func NewDecimal(gen NumberID) Decimal {
	return Decimal{gen: gen}
}

// Generate returns the next numeric ID as a decimal string.
func (d Decimal) Generate() string {
	return strconv.FormatInt(d.gen.Generate(), 10)
}
