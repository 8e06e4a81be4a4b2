// Package fused holds the output types of rank fusion.
package fused

// Entry is one post in the fused order with its RRF score.
type Entry struct {
	ID    int64
	Score float64
}
