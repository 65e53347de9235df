package field

import (
	"sort"
	"strconv"
)

// WeightedValue is a ParameterizedValue whose "q" parameter (spec §3)
// carries a float in [0.0, 1.0] used for content-negotiation ordering.
type WeightedValue[U any] struct {
	ParameterizedValue[U]
}

// Weight returns the effective q (1.0 if absent) and whether q was
// present on the wire.
func (w WeightedValue[U]) Weight() (q float64, present bool) {
	s, ok := w.Param("q")
	if !ok {
		return 1.0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1.0, false
	}
	return v, true
}

// SortByWeight sorts a slice of WeightedValue stably, descending by
// weight. Per spec §3: an absent q sorts ahead of an explicit q=1.0 at
// the same effective weight; all other ties preserve insertion order
// (stability).
func SortByWeight[U any](items []WeightedValue[U]) {
	sort.SliceStable(items, func(i, j int) bool {
		qi, presI := items[i].Weight()
		qj, presJ := items[j].Weight()
		if qi != qj {
			return qi > qj
		}
		if presI != presJ {
			return !presI // absent (presI==false) sorts first
		}
		return false
	})
}
