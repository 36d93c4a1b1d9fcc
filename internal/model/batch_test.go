package model

import "testing"

func TestDistributeBatchesExamples(t *testing.T) {
	tests := []struct {
		qty, setups int
		want        []int
	}{
		{10, 3, []int{4, 3, 3}},
		{2, 5, []int{2}},
		{5, 5, []int{5}},
		{9, 3, []int{3, 3, 3}},
		{7, 1, []int{7}},
		{7, 0, []int{7}},
	}
	for _, tt := range tests {
		got := DistributeBatches(tt.qty, tt.setups)
		if len(got) != len(tt.want) {
			t.Errorf("DistributeBatches(%d, %d) = %v, want %v", tt.qty, tt.setups, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("DistributeBatches(%d, %d) = %v, want %v", tt.qty, tt.setups, got, tt.want)
				break
			}
		}
	}
}

func TestDistributeBatchesInvariants(t *testing.T) {
	for qty := 1; qty <= 60; qty++ {
		for setups := 1; setups <= 12; setups++ {
			batches := DistributeBatches(qty, setups)
			sum, min, max := 0, batches[0], batches[0]
			for _, b := range batches {
				sum += b
				if b < min {
					min = b
				}
				if b > max {
					max = b
				}
			}
			if sum != qty {
				t.Fatalf("qty=%d setups=%d: sum %d", qty, setups, sum)
			}
			if max-min > 1 {
				t.Fatalf("qty=%d setups=%d: spread %d", qty, setups, max-min)
			}
			if qty > setups && len(batches) != setups {
				t.Fatalf("qty=%d setups=%d: expected %d batches, got %d", qty, setups, setups, len(batches))
			}
		}
	}
}

func TestDistributeBatchesEmpty(t *testing.T) {
	if got := DistributeBatches(0, 3); got != nil {
		t.Errorf("expected nil for zero quantity, got %v", got)
	}
}

func TestFormatBatches(t *testing.T) {
	got := FormatBatches([]int{4, 3})
	if got != "Batch 1: 4 pcs, Batch 2: 3 pcs" {
		t.Errorf("unexpected format: %q", got)
	}
}
