// Package anomaly owns the status-effect model of hostile units: buildups that
// accumulate toward a threshold and the timed effects they trigger.
package anomaly

import "fmt"

// Type identifies one of the eight status kinds.
type Type int

const (
	Burn Type = iota
	Freeze
	Corrosion
	Apoptosis
	Panic
	Silence
	Sloth
	Paralysis

	// Count is the number of status types.
	Count
)

// Threshold is the buildup value at which every status type triggers.
const Threshold = 1000.0

// BurnTickInterval is the elapsed effect time between two burn damage ticks.
const BurnTickInterval = 500.0

// Definition describes the fixed behaviour of one status type.
type Definition struct {
	Type     Type
	Name     string
	Duration float64 // Total effect duration in milliseconds
	// Magnitude is the type-specific factor recorded on trigger:
	// burn damage per tick as a share of attacker power, corrosion share of max HP
	// per second, apoptosis share of current HP, panic and sloth multipliers.
	Magnitude float64
}

var definitions = [Count]Definition{
	Burn:      {Type: Burn, Name: "burn", Duration: 5000, Magnitude: 0.4},
	Freeze:    {Type: Freeze, Name: "freeze", Duration: 3000},
	Corrosion: {Type: Corrosion, Name: "corrosion", Duration: 8000, Magnitude: 0.03},
	Apoptosis: {Type: Apoptosis, Name: "apoptosis", Duration: 1000, Magnitude: 0.1},
	Panic:     {Type: Panic, Name: "panic", Duration: 5000, Magnitude: 1.5},
	Silence:   {Type: Silence, Name: "silence", Duration: 6000},
	Sloth:     {Type: Sloth, Name: "sloth", Duration: 5000, Magnitude: 0.5},
	Paralysis: {Type: Paralysis, Name: "paralysis", Duration: 1500},
}

// corrosionFloor is the minimum corrosion damage per second.
const corrosionFloor = 80.0

// Def returns the definition of a status type.
func Def(t Type) Definition {
	return definitions[t]
}

// String returns the string representation of a status type.
func (t Type) String() string {
	if t < 0 || t >= Count {
		return "unknown"
	}
	return definitions[t].Name
}

// Valid reports whether t names a known status type.
func (t Type) Valid() bool {
	return t >= 0 && t < Count
}

// Parse converts a status name into a Type.
func Parse(s string) (Type, error) {
	for i := Type(0); i < Count; i++ {
		if definitions[i].Name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("anomaly: unknown status type %q", s)
}

// MarshalText implements encoding.TextMarshaler so types read as names in YAML.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("anomaly: invalid status type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
