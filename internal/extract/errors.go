// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "fmt"

// UnresolvedPopulationError reports a projection whose pre or post endpoint
// is not a group of the source network's population table. This is a
// consistency violation in the source; extraction aborts.
type UnresolvedPopulationError struct {
	// Projection is the offending projection's identifier.
	Projection string

	// Endpoint is "pre" or "post".
	Endpoint string

	// Population is the dangling group's name.
	Population string
}

func (e *UnresolvedPopulationError) Error() string {
	return fmt.Sprintf("projection %q: %s population %q is not declared in the network",
		e.Projection, e.Endpoint, e.Population)
}

// MissingParameterError reports a population or projection without the
// parameter data extraction requires. Extraction is all-or-nothing, so a
// single incomplete group aborts the whole pass.
type MissingParameterError struct {
	// Kind is "population" or "projection".
	Kind string

	// ID is the offending group's identifier.
	ID string

	// Param names the missing parameter, or is empty when the whole
	// parameter table is absent.
	Param string
}

func (e *MissingParameterError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s %q has no parameter table", e.Kind, e.ID)
	}
	return fmt.Sprintf("%s %q: missing parameter %q", e.Kind, e.ID, e.Param)
}
