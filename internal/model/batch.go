package model

import (
	"strconv"
	"strings"
)

// DistributeBatches splits qty pieces over setups runs as evenly as
// possible, larger batches first. When qty does not exceed the number of
// setups the whole lot is a single batch. A non-positive qty yields no
// batches; setups below 1 count as 1.
func DistributeBatches(qty, setups int) []int {
	if qty < 1 {
		return nil
	}
	if setups < 1 {
		setups = 1
	}
	if qty <= setups {
		return []int{qty}
	}

	base := qty / setups
	remainder := qty % setups
	batches := make([]int, setups)
	for i := range batches {
		batches[i] = base
		if i < remainder {
			batches[i]++
		}
	}
	return batches
}

// FormatBatches renders batch sizes as "Batch 1: 4 pcs, Batch 2: 3 pcs".
func FormatBatches(batches []int) string {
	parts := make([]string, len(batches))
	for i, n := range batches {
		parts[i] = "Batch " + strconv.Itoa(i+1) + ": " + strconv.Itoa(n) + " pcs"
	}
	return strings.Join(parts, ", ")
}
