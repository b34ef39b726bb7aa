// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"reflect"
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Quantity
		wantErr bool
	}{
		{
			name: "magnitude with unit",
			in:   "0.5 mV",
			want: Quantity{Value: 0.5, Unit: "mV"},
		},
		{
			name: "dimensionless",
			in:   "42",
			want: Quantity{Value: 42},
		},
		{
			name: "negative weight",
			in:   "-1 nS",
			want: Quantity{Value: -1, Unit: "nS"},
		},
		{
			name: "compound unit kept verbatim",
			in:   "3.2 ms**-1",
			want: Quantity{Value: 3.2, Unit: "ms**-1"},
		},
		{
			name: "surrounding whitespace",
			in:   "  2 ms ",
			want: Quantity{Value: 2, Unit: "ms"},
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
		{
			name:    "no magnitude",
			in:      "mV",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseQuantity(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuantity(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseQuantity(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuantityStringRoundTrip(t *testing.T) {
	quantities := []Quantity{
		{Value: 0.5, Unit: "mV"},
		{Value: -0.55},
		{Value: 20, Unit: "ms"},
		{Value: 1e-9, Unit: "S"},
	}
	for _, q := range quantities {
		got, err := ParseQuantity(q.String())
		if err != nil {
			t.Fatalf("ParseQuantity(%q): %v", q.String(), err)
		}
		if got != q {
			t.Errorf("round trip of %v = %v", q, got)
		}
	}
}

func TestParamTableLookup(t *testing.T) {
	pt := ParamTable{
		{Name: "refP", Quantity: Quantity{Value: 2, Unit: "ms"}},
		{Name: "weight", Quantity: Quantity{Value: -1, Unit: "nS"}},
	}

	q, ok := pt.Lookup("weight")
	if !ok || q.Value != -1 {
		t.Errorf("Lookup(weight) = %v, %t", q, ok)
	}
	if _, ok := pt.Lookup("taupre"); ok {
		t.Error("Lookup(taupre) found a missing parameter")
	}
}

func TestParamTableYAMLPreservesOrder(t *testing.T) {
	pt := ParamTable{
		{Name: "zeta", Quantity: Quantity{Value: 1, Unit: "ms"}},
		{Name: "alpha", Quantity: Quantity{Value: 2, Unit: "mV"}},
		{Name: "mid", Quantity: Quantity{Value: 0.5}},
	}

	data, err := yaml.Marshal(pt)
	if err != nil {
		t.Fatal(err)
	}

	var got ParamTable
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, pt) {
		t.Errorf("round trip changed the table:\n got %v\nwant %v", got, pt)
	}
}

func TestParamTableYAMLRejectsNonMapping(t *testing.T) {
	var pt ParamTable
	if err := yaml.Unmarshal([]byte("[1, 2]"), &pt); err == nil {
		t.Error("expected error for sequence input")
	}
}
