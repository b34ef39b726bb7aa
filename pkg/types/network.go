// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the hardware-agnostic intermediate representation
// shared across the compiler pipeline: population and projection tables with
// explicit (magnitude, unit) parameter values, plus derived network totals.
// The IR is a pure value object; the extractor constructs it and nothing
// mutates it afterwards.
// Implements: docs/ARCHITECTURE § Pipeline, § Invariants.
package types

import (
	"fmt"
	"math"
	"reflect"
)

// PopulationKind distinguishes simulated neuron groups from the virtual
// input sources a projection may fan in from.
type PopulationKind string

const (
	KindNeuron   PopulationKind = "neuron"
	KindPoisson  PopulationKind = "poisson"
	KindSpikeGen PopulationKind = "spikegen"
)

// Sign is the polarity of a projection's effect on its target.
type Sign string

const (
	SignExcitatory Sign = "exc"
	SignInhibitory Sign = "inh"
)

// Population is one named group of neurons (or a population-like generator
// source) together with its declared size and parameter table. Entries are
// immutable once extracted.
type Population struct {
	// ID is the source network's own group name, unique within the IR.
	ID string `json:"id" yaml:"id"`

	// Kind marks generator sources; plain neuron groups are KindNeuron.
	Kind PopulationKind `json:"kind" yaml:"kind"`

	// Size is the number of units in the group. Always positive.
	Size int `json:"size" yaml:"size"`

	// Params is the group's parameter table, verbatim from the source.
	// Generator groups may have an empty table.
	Params ParamTable `json:"params,omitempty" yaml:"params,omitempty"`
}

// Projection is one named synaptic connection group between two populations.
// Pre and Post reference Population IDs; self-loops (Pre == Post) are valid.
type Projection struct {
	ID   string `json:"id" yaml:"id"`
	Pre  string `json:"pre" yaml:"pre"`
	Post string `json:"post" yaml:"post"`

	// Sign is exc or inh, taken from the source's explicit polarity when
	// declared and otherwise derived from the dominant weight parameter.
	Sign Sign `json:"sign" yaml:"sign"`

	// Plastic reports whether an on-chip weight-update rule is attached.
	Plastic bool `json:"plastic" yaml:"plastic"`

	// Params is the projection's parameter table, verbatim from the source.
	Params ParamTable `json:"params,omitempty" yaml:"params,omitempty"`

	// PConnection is the connection probability in [0,1]. Deterministic
	// (all-to-all) connectivity reports 1.
	PConnection float64 `json:"p_connection" yaml:"p_connection"`

	// WeightMean and WeightStd describe the weight-initialization
	// distribution. Deterministic weights report the fixed value with a
	// standard deviation of 0. The target hardware re-derives connectivity
	// from these tags; synaptic index lists are deliberately not captured.
	WeightMean float64 `json:"mean" yaml:"mean"`
	WeightStd  float64 `json:"std" yaml:"std"`

	// Synapses is the per-projection synapse count: the exact count when
	// the source enumerates indices, otherwise round(pre * post * p).
	Synapses int `json:"synapses" yaml:"synapses"`
}

// NetworkIR is the normalized snapshot of one source network: the population
// and projection tables in source declaration order, plus derived totals.
type NetworkIR struct {
	// Name identifies the source network.
	Name string `json:"name" yaml:"name"`

	// TotalNeurons is the sum of all population sizes.
	TotalNeurons int `json:"n_total" yaml:"n_total"`

	// TotalSynapses is the sum of per-projection synapse counts.
	TotalSynapses int `json:"s_total" yaml:"s_total"`

	Populations []Population `json:"populations" yaml:"populations"`
	Projections []Projection `json:"projections" yaml:"projections"`
}

// Population returns the population with the given ID, or nil.
func (ir *NetworkIR) Population(id string) *Population {
	for i := range ir.Populations {
		if ir.Populations[i].ID == id {
			return &ir.Populations[i]
		}
	}
	return nil
}

// Projection returns the projection with the given ID, or nil.
func (ir *NetworkIR) Projection(id string) *Projection {
	for i := range ir.Projections {
		if ir.Projections[i].ID == id {
			return &ir.Projections[i]
		}
	}
	return nil
}

// Equal reports value equality, including table order. A nil table and an
// empty one are the same network; YAML round-trips do not distinguish them.
func (ir *NetworkIR) Equal(other *NetworkIR) bool {
	if ir == nil || other == nil {
		return ir == other
	}
	a, b := *ir, *other
	if len(a.Populations) == 0 {
		a.Populations = nil
	}
	if len(b.Populations) == 0 {
		b.Populations = nil
	}
	if len(a.Projections) == 0 {
		a.Projections = nil
	}
	if len(b.Projections) == 0 {
		b.Projections = nil
	}
	return reflect.DeepEqual(a, b)
}

// Validate checks the IR's internal consistency: unique identifiers,
// positive sizes, resolvable projection endpoints, tag bounds, and totals
// matching the tables. A freshly extracted or reloaded IR must pass.
func (ir *NetworkIR) Validate() error {
	popIDs := make(map[string]bool, len(ir.Populations))
	neurons := 0
	for _, p := range ir.Populations {
		if p.ID == "" {
			return fmt.Errorf("population with empty identifier")
		}
		if popIDs[p.ID] {
			return fmt.Errorf("duplicate population identifier %q", p.ID)
		}
		popIDs[p.ID] = true
		if p.Size <= 0 {
			return fmt.Errorf("population %q: size %d must be positive", p.ID, p.Size)
		}
		neurons += p.Size
	}

	projIDs := make(map[string]bool, len(ir.Projections))
	synapses := 0
	for _, s := range ir.Projections {
		if projIDs[s.ID] {
			return fmt.Errorf("duplicate projection identifier %q", s.ID)
		}
		projIDs[s.ID] = true
		if !popIDs[s.Pre] {
			return fmt.Errorf("projection %q: pre population %q not in population table", s.ID, s.Pre)
		}
		if !popIDs[s.Post] {
			return fmt.Errorf("projection %q: post population %q not in population table", s.ID, s.Post)
		}
		if s.Sign != SignExcitatory && s.Sign != SignInhibitory {
			return fmt.Errorf("projection %q: invalid sign %q", s.ID, s.Sign)
		}
		if s.PConnection < 0 || s.PConnection > 1 {
			return fmt.Errorf("projection %q: p_connection %v outside [0,1]", s.ID, s.PConnection)
		}
		if s.WeightStd < 0 || math.IsNaN(s.WeightStd) {
			return fmt.Errorf("projection %q: std %v must be non-negative", s.ID, s.WeightStd)
		}
		if s.Synapses < 0 {
			return fmt.Errorf("projection %q: synapse count %d must be non-negative", s.ID, s.Synapses)
		}
		synapses += s.Synapses
	}

	if ir.TotalNeurons != neurons {
		return fmt.Errorf("n_total %d does not match population table sum %d", ir.TotalNeurons, neurons)
	}
	if ir.TotalSynapses != synapses {
		return fmt.Errorf("s_total %d does not match projection table sum %d", ir.TotalSynapses, synapses)
	}
	return nil
}
