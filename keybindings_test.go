package main

import (
	"testing"

	"github.com/carlmjohnson/be"

	"github.com/maximkravchenko/fintui/aggregate"
)

func TestNextGranularityCycles(t *testing.T) {
	g := aggregate.Day
	seen := []aggregate.Granularity{g}
	for range 4 {
		g = nextGranularity(g)
		seen = append(seen, g)
	}

	be.DeepEqual(t, []aggregate.Granularity{
		aggregate.Day,
		aggregate.Week,
		aggregate.Month,
		aggregate.Year,
		aggregate.Day,
	}, seen)
}
