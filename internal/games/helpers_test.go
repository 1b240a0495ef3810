package games

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishCasino_Go/internal/catalog"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

// scriptedSource replays fixed draws, then defers to a seeded source
type scriptedSource struct {
	ints   []int
	floats []float64
	rest   rng.Source
}

func newScripted(ints []int, floats []float64) *scriptedSource {
	return &scriptedSource{ints: ints, floats: floats, rest: rng.NewSeeded(1)}
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return s.rest.IntN(n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return s.rest.Float64()
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// rankIndex returns the IntN draw that yields rank
func rankIndex(rank string) int {
	for i, r := range cardRanks {
		if r == rank {
			return i
		}
	}
	panic("unknown rank " + rank)
}

// cards scripts rank/suit pairs for drawCard
func cards(ranks ...string) []int {
	out := make([]int, 0, len(ranks)*2)
	for _, r := range ranks {
		out = append(out, rankIndex(r), 0)
	}
	return out
}

func testCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}
