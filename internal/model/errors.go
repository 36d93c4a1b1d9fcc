package model

import "fmt"

// ValidationError reports a missing or out-of-range input. The calculation
// that returned it produced no result.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidGeometryError reports that no combination of the entered
// dimensions yields a positive volume.
type InvalidGeometryError struct {
	Units UnitSystem
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid dimensions: enter a diameter and length, or length, width and thickness in %s", e.Units.LengthUnit())
}
