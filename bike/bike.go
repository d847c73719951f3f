// Package bike holds the rentable fleet and its persistence.
package bike

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// Type is the kind of vehicle, as shown to riders.
type Type int

const (
	Scooter Type = iota
	Motorcycle
	Bicycle
)

var typeNames = [...]string{"Scooter", "Motorcycle", "Bicycle"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// ParseType is the inverse of String.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("invalid bike type %q", s)
}

func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Type) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *Type) Scan(i any) error {
	switch v := i.(type) {
	case string:
		parsed, err := ParseType(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	}
	return fmt.Errorf("cannot scan %T into bike.Type", i)
}

func (t Type) Value() (driver.Value, error) {
	return t.String(), nil
}

// Bike is a single vehicle that can be rented from a station.
type Bike struct {
	ID    int64
	Model string
	Type  Type
	// StationID is nil while the bike is out on a ride.
	StationID *int64 `db:"station_id"`
	Available bool
}
