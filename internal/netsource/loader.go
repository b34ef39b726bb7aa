// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package netsource

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/orca-compiler/pkg/types"
)

// networkDoc is the on-disk network description schema.
type networkDoc struct {
	Name        string          `yaml:"name"`
	Populations []populationDoc `yaml:"populations"`
	Projections []projectionDoc `yaml:"projections"`
}

type populationDoc struct {
	Name   string            `yaml:"name"`
	Kind   string            `yaml:"kind"`
	Size   int               `yaml:"size"`
	Params *types.ParamTable `yaml:"params"`
}

type projectionDoc struct {
	Name         string            `yaml:"name"`
	Pre          string            `yaml:"pre"`
	Post         string            `yaml:"post"`
	Plastic      bool              `yaml:"plastic"`
	Sign         string            `yaml:"sign"`
	PConnection  *float64          `yaml:"p_connection"`
	Weights      *weightsDoc       `yaml:"weights"`
	SynapseCount *int              `yaml:"synapse_count"`
	Params       *types.ParamTable `yaml:"params"`
}

type weightsDoc struct {
	Mean float64 `yaml:"mean"`
	Std  float64 `yaml:"std"`
}

// Load reads a YAML network description and builds the in-memory network it
// describes. The description is declaration-ordered: populations and
// projections keep their document order, as do the entries of every
// parameter table.
func Load(r io.Reader) (Network, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading network description: %w", err)
	}

	var doc networkDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing network description: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("network description has no name")
	}

	b := New(doc.Name)
	groups := make(map[string]*Group, len(doc.Populations))

	for _, p := range doc.Populations {
		if p.Name == "" {
			return nil, fmt.Errorf("population with empty name")
		}
		if _, dup := groups[p.Name]; dup {
			return nil, fmt.Errorf("duplicate population %q", p.Name)
		}
		if p.Size <= 0 {
			return nil, fmt.Errorf("population %q: size %d must be positive", p.Name, p.Size)
		}

		var params types.ParamTable
		if p.Params != nil {
			params = *p.Params
			if params == nil {
				params = types.ParamTable{}
			}
		}

		var g *Group
		switch types.PopulationKind(p.Kind) {
		case types.KindNeuron, "":
			g = b.AddPopulation(p.Name, p.Size, params)
		case types.KindPoisson:
			g = b.AddPoisson(p.Name, p.Size, params)
		case types.KindSpikeGen:
			g = b.AddSpikeGen(p.Name, p.Size)
		default:
			return nil, fmt.Errorf("population %q: unknown kind %q", p.Name, p.Kind)
		}
		groups[p.Name] = g
	}

	seen := make(map[string]bool, len(doc.Projections))
	for _, s := range doc.Projections {
		if s.Name == "" {
			return nil, fmt.Errorf("projection with empty name")
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate projection %q", s.Name)
		}
		seen[s.Name] = true

		pre, ok := groups[s.Pre]
		if !ok {
			return nil, fmt.Errorf("projection %q: unknown pre population %q", s.Name, s.Pre)
		}
		post, ok := groups[s.Post]
		if !ok {
			return nil, fmt.Errorf("projection %q: unknown post population %q", s.Name, s.Post)
		}

		opts, err := projectionOptions(s)
		if err != nil {
			return nil, err
		}

		var params types.ParamTable
		if s.Params != nil {
			params = *s.Params
			if params == nil {
				params = types.ParamTable{}
			}
		}
		b.Connect(s.Name, pre, post, params, opts...)
	}

	return b, nil
}

// LoadFile reads a network description from path.
func LoadFile(path string) (Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening network description: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func projectionOptions(s projectionDoc) ([]ConnectOption, error) {
	var opts []ConnectOption
	if s.Plastic {
		opts = append(opts, WithPlasticity())
	}
	if s.Sign != "" {
		sign := types.Sign(s.Sign)
		if sign != types.SignExcitatory && sign != types.SignInhibitory {
			return nil, fmt.Errorf("projection %q: invalid sign %q (use exc or inh)", s.Name, s.Sign)
		}
		opts = append(opts, WithSign(sign))
	}
	if s.PConnection != nil {
		opts = append(opts, WithProbability(*s.PConnection))
	}
	if s.Weights != nil {
		opts = append(opts, WithRandomWeights(s.Weights.Mean, s.Weights.Std))
	}
	if s.SynapseCount != nil {
		opts = append(opts, WithSynapseCount(*s.SynapseCount))
	}
	return opts, nil
}
