package stats

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{name: "median of even sample interpolates", values: []float64{1, 2, 3, 4}, q: 0.5, want: 2.5},
		{name: "median of odd sample is middle value", values: []float64{1, 2, 3}, q: 0.5, want: 2},
		{name: "interpolated interior quantile", values: []float64{15, 20, 35, 40, 50}, q: 0.4, want: 29},
		{name: "q=0 is minimum", values: []float64{9, 3, 7}, q: 0, want: 3},
		{name: "q=1 is maximum", values: []float64{9, 3, 7}, q: 1, want: 9},
		{name: "single value for any q", values: []float64{42}, q: 0.99, want: 42},
		{name: "unsorted input", values: []float64{4, 1, 3, 2}, q: 0.5, want: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.values, tt.q)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.values, tt.q, got, tt.want)
			}
		})
	}
}

func TestPercentileEmpty(t *testing.T) {
	if got := Percentile(nil, 0.5); !math.IsNaN(got) {
		t.Errorf("Percentile(nil) = %v, want NaN", got)
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Percentile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestTrimAtPercentile(t *testing.T) {
	// 0..999 uniform: p99 lands at 989.01, so exactly 990 values survive.
	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64(i)
	}

	trimmed, p := TrimAtPercentile(values, 0.99)
	if len(trimmed) != 990 {
		t.Errorf("trimmed length = %d, want 990", len(trimmed))
	}
	for _, v := range trimmed {
		if v > p {
			t.Errorf("trimmed contains %v > p99 %v", v, p)
		}
	}
}

func TestTrimAtFullPercentileIsNoop(t *testing.T) {
	values := []float64{5, 1, 9, 3}
	trimmed, _ := TrimAtPercentile(values, 0.99)
	again, _ := TrimAtPercentile(trimmed, 1)

	if len(again) != len(trimmed) {
		t.Fatalf("re-trim at q=1 changed length: %d -> %d", len(trimmed), len(again))
	}
	for i := range again {
		if again[i] != trimmed[i] {
			t.Errorf("re-trim changed values at %d: %v -> %v", i, trimmed[i], again[i])
		}
	}
}

func TestTrimPreservesOrder(t *testing.T) {
	values := []float64{10, 2, 8, 4}
	trimmed, _ := TrimAtPercentile(values, 1)
	for i, want := range values {
		if trimmed[i] != want {
			t.Fatalf("order not preserved: got %v, want %v", trimmed, values)
		}
	}
}
