// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract walks a source network's declared populations and
// projections and produces the normalized intermediate representation the
// emitter and the hardware code generator consume. Extraction is a pure
// function of the source's current state: it never mutates the source, and
// re-running it on an unchanged network yields an identical IR.
// Implements: docs/ARCHITECTURE § Pipeline (extract), § Invariants.
package extract

import (
	"fmt"
	"math"

	"github.com/pdiddy/orca-compiler/internal/netsource"
	"github.com/pdiddy/orca-compiler/pkg/types"
)

// weightParams are the parameter names checked, in order, when deriving a
// projection's polarity from its dominant weight parameter.
var weightParams = []string{"weight", "w_plast", "w"}

// Snapshot extracts the IR from a source network. It is all-or-nothing: any
// dangling endpoint or incomplete parameter set aborts with a typed error
// naming the offending group, and no partial IR is returned.
func Snapshot(src netsource.Network) (*types.NetworkIR, error) {
	ir := &types.NetworkIR{Name: src.Name()}

	pops := src.Populations()
	ids := make(map[netsource.Population]string, len(pops))
	seen := make(map[string]bool, len(pops))

	for _, p := range pops {
		name := p.Name()
		if seen[name] {
			return nil, fmt.Errorf("duplicate population identifier %q", name)
		}
		seen[name] = true

		if p.Size() <= 0 {
			return nil, fmt.Errorf("population %q: size %d must be positive", name, p.Size())
		}

		params, ok := p.Parameters()
		if !ok && p.Kind() == types.KindNeuron {
			// Generator sources are population-like and may carry no
			// parameter table; real neuron groups must have one.
			return nil, &MissingParameterError{Kind: "population", ID: name}
		}
		// Empty tables normalize to nil so artifact round trips stay
		// value-equal (empty tables are omitted on disk).
		if len(params) == 0 {
			params = nil
		}

		ir.Populations = append(ir.Populations, types.Population{
			ID:     name,
			Kind:   p.Kind(),
			Size:   p.Size(),
			Params: params,
		})
		ir.TotalNeurons += p.Size()
		ids[p] = name
	}

	projs := src.Projections()
	seenProj := make(map[string]bool, len(projs))

	for _, c := range projs {
		name := c.Name()
		if seenProj[name] {
			return nil, fmt.Errorf("duplicate projection identifier %q", name)
		}
		seenProj[name] = true

		pre, ok := ids[c.Pre()]
		if !ok {
			return nil, &UnresolvedPopulationError{
				Projection: name, Endpoint: "pre", Population: groupName(c.Pre()),
			}
		}
		post, ok := ids[c.Post()]
		if !ok {
			return nil, &UnresolvedPopulationError{
				Projection: name, Endpoint: "post", Population: groupName(c.Post()),
			}
		}

		params, ok := c.Parameters()
		if !ok {
			return nil, &MissingParameterError{Kind: "projection", ID: name}
		}
		if len(params) == 0 {
			params = nil
		}

		sign, err := classifySign(c, params)
		if err != nil {
			return nil, err
		}

		p := 1.0
		if prob, probabilistic := c.ConnectionProbability(); probabilistic {
			if prob < 0 || prob > 1 || math.IsNaN(prob) {
				return nil, fmt.Errorf("projection %q: connection probability %v outside [0,1]", name, prob)
			}
			p = prob
		}

		mean, std := weightTags(c, params)
		if std < 0 || math.IsNaN(std) {
			return nil, fmt.Errorf("projection %q: weight std %v must be non-negative", name, std)
		}

		count := synapseCount(c, p)

		ir.Projections = append(ir.Projections, types.Projection{
			ID:          name,
			Pre:         pre,
			Post:        post,
			Sign:        sign,
			Plastic:     c.Plastic(),
			Params:      params,
			PConnection: p,
			WeightMean:  mean,
			WeightStd:   std,
			Synapses:    count,
		})
		ir.TotalSynapses += count
	}

	return ir, nil
}

// classifySign returns the source's explicit polarity when declared, and
// otherwise the sign of the dominant weight parameter.
func classifySign(c netsource.Projection, params types.ParamTable) (types.Sign, error) {
	if sign, ok := c.ExplicitSign(); ok {
		if sign != types.SignExcitatory && sign != types.SignInhibitory {
			return "", fmt.Errorf("projection %q: invalid sign %q", c.Name(), sign)
		}
		return sign, nil
	}
	if w, ok := dominantWeight(params); ok {
		if w < 0 {
			return types.SignInhibitory, nil
		}
		return types.SignExcitatory, nil
	}
	return "", &MissingParameterError{Kind: "projection", ID: c.Name(), Param: weightParams[0]}
}

// weightTags returns the weight distribution's mean and standard deviation.
// Deterministic weights report the fixed weight value with a std of 0.
func weightTags(c netsource.Projection, params types.ParamTable) (mean, std float64) {
	if dist, ok := c.WeightDistribution(); ok {
		return dist.Mean, dist.Std
	}
	if w, ok := dominantWeight(params); ok {
		return w, 0
	}
	return 0, 0
}

// synapseCount is the per-projection count: exact when the source enumerates
// indices, otherwise round(pre * post * p).
func synapseCount(c netsource.Projection, p float64) int {
	if n, ok := c.SynapseCount(); ok {
		return n
	}
	pairs := float64(c.Pre().Size()) * float64(c.Post().Size())
	return int(math.Round(pairs * p))
}

// dominantWeight returns the value of the first weight parameter present.
func dominantWeight(params types.ParamTable) (float64, bool) {
	for _, name := range weightParams {
		if q, ok := params.Lookup(name); ok {
			return q.Value, true
		}
	}
	return 0, false
}

// groupName tolerates nil endpoints when building error messages.
func groupName(p netsource.Population) string {
	if p == nil {
		return "<nil>"
	}
	return p.Name()
}
