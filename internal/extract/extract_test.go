// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/orca-compiler/internal/netsource"
	"github.com/pdiddy/orca-compiler/pkg/types"
)

func neuronParams() types.ParamTable {
	return types.ParamTable{
		{Name: "refP", Quantity: types.Quantity{Value: 2, Unit: "ms"}},
		{Name: "Vm", Quantity: types.Quantity{Value: -55, Unit: "mV"}},
	}
}

func weightParams1(w float64) types.ParamTable {
	return types.ParamTable{
		{Name: "weight", Quantity: types.Quantity{Value: w, Unit: "nS"}},
	}
}

// wtaNetwork builds the reference scenario: 50 excitatory and 12 inhibitory
// neurons with one static inhibitory projection at full connectivity.
func wtaNetwork() *netsource.Builder {
	b := netsource.New("test_wta")
	exc := b.AddPopulation("n_exc", 50, neuronParams())
	inh := b.AddPopulation("n_inh", 12, neuronParams())
	b.Connect("s_inh_exc", inh, exc, weightParams1(-1),
		netsource.WithRandomWeights(1, 0))
	return b
}

func TestSnapshotWTAScenario(t *testing.T) {
	ir, err := Snapshot(wtaNetwork())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if err := ir.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if ir.TotalNeurons != 62 {
		t.Errorf("n_total = %d, want 62", ir.TotalNeurons)
	}
	if ir.TotalSynapses != 600 {
		t.Errorf("s_total = %d, want 600", ir.TotalSynapses)
	}

	s := ir.Projection("s_inh_exc")
	if s == nil {
		t.Fatal("s_inh_exc missing from projection table")
	}
	if s.Pre != "n_inh" || s.Post != "n_exc" {
		t.Errorf("endpoints = [%s, %s], want [n_inh, n_exc]", s.Pre, s.Post)
	}
	if s.Sign != types.SignInhibitory {
		t.Errorf("sign = %q, want inh", s.Sign)
	}
	if s.Plastic {
		t.Error("projection should be static")
	}
	if s.PConnection != 1 || s.WeightMean != 1 || s.WeightStd != 0 {
		t.Errorf("tags = {p: %v, mean: %v, std: %v}, want {1, 1, 0}",
			s.PConnection, s.WeightMean, s.WeightStd)
	}
	if s.Synapses != 600 {
		t.Errorf("synapses = %d, want 600", s.Synapses)
	}
}

func TestSnapshotIsDeterministic(t *testing.T) {
	net := wtaNetwork()

	first, err := Snapshot(net)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Snapshot(net)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Error("two extractions of an unchanged network differ")
	}
}

func TestSnapshotPreservesDeclarationOrder(t *testing.T) {
	b := netsource.New("ordered")
	groups := make([]*netsource.Group, 0, 4)
	for _, name := range []string{"zeta", "alpha", "mid", "omega"} {
		groups = append(groups, b.AddPopulation(name, 5, neuronParams()))
	}
	b.Connect("s_z", groups[0], groups[1], weightParams1(1))
	b.Connect("s_a", groups[1], groups[2], weightParams1(1))

	ir, err := Snapshot(b)
	if err != nil {
		t.Fatal(err)
	}

	for i, want := range []string{"zeta", "alpha", "mid", "omega"} {
		if ir.Populations[i].ID != want {
			t.Errorf("population %d = %q, want %q", i, ir.Populations[i].ID, want)
		}
	}
	if ir.Projections[0].ID != "s_z" || ir.Projections[1].ID != "s_a" {
		t.Errorf("projection order = [%s, %s]", ir.Projections[0].ID, ir.Projections[1].ID)
	}
}

func TestSnapshotUnresolvedPopulation(t *testing.T) {
	b := netsource.New("broken")
	exc := b.AddPopulation("n_exc", 10, neuronParams())

	// The foreign group never enters the network's population collection.
	foreign := netsource.New("other").AddPopulation("n_ghost", 4, neuronParams())
	b.Connect("s_bad", foreign, exc, weightParams1(1))

	_, err := Snapshot(b)
	var unresolved *UnresolvedPopulationError
	if !errors.As(err, &unresolved) {
		t.Fatalf("err = %v, want UnresolvedPopulationError", err)
	}
	if unresolved.Projection != "s_bad" || unresolved.Endpoint != "pre" || unresolved.Population != "n_ghost" {
		t.Errorf("error detail = %+v", unresolved)
	}
}

func TestSnapshotMissingParameters(t *testing.T) {
	t.Run("population without table", func(t *testing.T) {
		b := netsource.New("n")
		b.AddPopulation("bare", 3, nil)

		_, err := Snapshot(b)
		var missing *MissingParameterError
		if !errors.As(err, &missing) {
			t.Fatalf("err = %v, want MissingParameterError", err)
		}
		if missing.Kind != "population" || missing.ID != "bare" {
			t.Errorf("error detail = %+v", missing)
		}
	})

	t.Run("projection without table", func(t *testing.T) {
		b := netsource.New("n")
		a := b.AddPopulation("a", 3, neuronParams())
		b.Connect("s_bare", a, a, nil)

		_, err := Snapshot(b)
		var missing *MissingParameterError
		if !errors.As(err, &missing) {
			t.Fatalf("err = %v, want MissingParameterError", err)
		}
		if missing.Kind != "projection" || missing.ID != "s_bare" {
			t.Errorf("error detail = %+v", missing)
		}
	})

	t.Run("no polarity information", func(t *testing.T) {
		b := netsource.New("n")
		a := b.AddPopulation("a", 3, neuronParams())
		b.Connect("s_unsigned", a, a, types.ParamTable{
			{Name: "tausyn", Quantity: types.Quantity{Value: 5, Unit: "ms"}},
		})

		_, err := Snapshot(b)
		var missing *MissingParameterError
		if !errors.As(err, &missing) {
			t.Fatalf("err = %v, want MissingParameterError", err)
		}
		if missing.Param != "weight" {
			t.Errorf("error detail = %+v", missing)
		}
	})

	t.Run("generator without table is fine", func(t *testing.T) {
		b := netsource.New("n")
		gen := b.AddSpikeGen("stimulus", 20)
		a := b.AddPopulation("a", 3, neuronParams())
		b.Connect("s_in", gen, a, weightParams1(2))

		ir, err := Snapshot(b)
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		p := ir.Population("stimulus")
		if p == nil || p.Kind != types.KindSpikeGen {
			t.Fatalf("stimulus = %+v", p)
		}
		if len(p.Params) != 0 {
			t.Errorf("stimulus params = %v, want empty", p.Params)
		}
	})
}

func TestClassifySign(t *testing.T) {
	tests := []struct {
		name string
		opts []netsource.ConnectOption
		w    float64
		want types.Sign
	}{
		{
			name: "explicit inhibitory wins over positive weight",
			opts: []netsource.ConnectOption{netsource.WithSign(types.SignInhibitory)},
			w:    1,
			want: types.SignInhibitory,
		},
		{
			name: "negative weight derives inhibitory",
			w:    -0.55,
			want: types.SignInhibitory,
		},
		{
			name: "positive weight derives excitatory",
			w:    1.6,
			want: types.SignExcitatory,
		},
		{
			name: "zero weight derives excitatory",
			w:    0,
			want: types.SignExcitatory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := netsource.New("n")
			a := b.AddPopulation("a", 2, neuronParams())
			b.Connect("s", a, a, weightParams1(tt.w), tt.opts...)

			ir, err := Snapshot(b)
			if err != nil {
				t.Fatal(err)
			}
			if got := ir.Projections[0].Sign; got != tt.want {
				t.Errorf("sign = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifySignDominantParameterOrder(t *testing.T) {
	// "weight" dominates "w_plast" even when declared later in the table.
	b := netsource.New("n")
	a := b.AddPopulation("a", 2, neuronParams())
	b.Connect("s", a, a, types.ParamTable{
		{Name: "w_plast", Quantity: types.Quantity{Value: 0.3}},
		{Name: "weight", Quantity: types.Quantity{Value: -1, Unit: "nS"}},
	})

	ir, err := Snapshot(b)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Projections[0].Sign != types.SignInhibitory {
		t.Errorf("sign = %q, want inh", ir.Projections[0].Sign)
	}
}

func TestConnectivityTags(t *testing.T) {
	b := netsource.New("n")
	pre := b.AddPopulation("pre", 100, neuronParams())
	post := b.AddPopulation("post", 50, neuronParams())
	b.Connect("s_sparse", pre, post, weightParams1(1),
		netsource.WithProbability(0.7),
		netsource.WithPlasticity(),
		netsource.WithRandomWeights(0.5, 0.25))

	ir, err := Snapshot(b)
	if err != nil {
		t.Fatal(err)
	}

	s := ir.Projection("s_sparse")
	if !s.Plastic {
		t.Error("plastic flag lost")
	}
	if s.PConnection != 0.7 {
		t.Errorf("p_connection = %v", s.PConnection)
	}
	if s.WeightMean != 0.5 || s.WeightStd != 0.25 {
		t.Errorf("distribution = (%v, %v)", s.WeightMean, s.WeightStd)
	}
	if s.Synapses != 3500 {
		t.Errorf("synapses = %d, want round(100*50*0.7) = 3500", s.Synapses)
	}
}

func TestDeterministicWeightTags(t *testing.T) {
	// Without a random distribution, the fixed weight value is the mean and
	// the std is zero.
	b := netsource.New("n")
	a := b.AddPopulation("a", 4, neuronParams())
	b.Connect("s", a, a, weightParams1(-0.55))

	ir, err := Snapshot(b)
	if err != nil {
		t.Fatal(err)
	}
	s := ir.Projections[0]
	if s.WeightMean != -0.55 || s.WeightStd != 0 {
		t.Errorf("tags = (%v, %v), want (-0.55, 0)", s.WeightMean, s.WeightStd)
	}
	if s.PConnection != 1 {
		t.Errorf("p_connection = %v, want 1 for deterministic connectivity", s.PConnection)
	}
}

func TestExplicitSynapseCountOverridesEstimate(t *testing.T) {
	b := netsource.New("n")
	a := b.AddPopulation("a", 100, neuronParams())
	b.Connect("s", a, a, weightParams1(1),
		netsource.WithProbability(0.5),
		netsource.WithSynapseCount(4321))

	ir, err := Snapshot(b)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Projections[0].Synapses != 4321 {
		t.Errorf("synapses = %d, want enumerated 4321", ir.Projections[0].Synapses)
	}
	if ir.TotalSynapses != 4321 {
		t.Errorf("s_total = %d, want 4321", ir.TotalSynapses)
	}
}

func TestSnapshotRejectsBadProbability(t *testing.T) {
	b := netsource.New("n")
	a := b.AddPopulation("a", 2, neuronParams())
	b.Connect("s", a, a, weightParams1(1), netsource.WithProbability(1.5))

	_, err := Snapshot(b)
	if err == nil || !strings.Contains(err.Error(), "outside [0,1]") {
		t.Errorf("err = %v, want probability bounds error", err)
	}
}

func TestSnapshotRejectsDuplicates(t *testing.T) {
	t.Run("population", func(t *testing.T) {
		b := netsource.New("n")
		b.AddPopulation("a", 2, neuronParams())
		b.AddPopulation("a", 3, neuronParams())
		if _, err := Snapshot(b); err == nil || !strings.Contains(err.Error(), "duplicate population") {
			t.Errorf("err = %v", err)
		}
	})
	t.Run("projection", func(t *testing.T) {
		b := netsource.New("n")
		a := b.AddPopulation("a", 2, neuronParams())
		b.Connect("s", a, a, weightParams1(1))
		b.Connect("s", a, a, weightParams1(1))
		if _, err := Snapshot(b); err == nil || !strings.Contains(err.Error(), "duplicate projection") {
			t.Errorf("err = %v", err)
		}
	})
}
