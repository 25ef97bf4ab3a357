// Copyright (C) 2025, DefiEdge Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package volfee

import "math"

// MaxPriceImpact is the saturation value for PriceImpact. A previous tick
// close to zero can push the ratio past any fixed width; the computation
// widens to int64 and caps here rather than wrapping.
const MaxPriceImpact uint32 = math.MaxUint32

// PriceImpact returns the absolute tick movement between two observations
// as a percentage of the previous tick, truncated.
//
// A previous tick of zero is the "no prior data" sentinel and yields zero
// impact; a recorded tick of exactly zero is indistinguishable from no
// data. Ticks are signed; only the magnitude of the movement matters.
func PriceImpact(currentTick, previousTick int24) uint32 {
	if previousTick == 0 {
		return 0
	}

	delta := int64(currentTick) - int64(previousTick)
	if delta < 0 {
		delta = -delta
	}
	prev := int64(previousTick)
	if prev < 0 {
		prev = -prev
	}

	impact := delta * 100 / prev
	if impact > int64(MaxPriceImpact) {
		return MaxPriceImpact
	}
	return uint32(impact)
}
