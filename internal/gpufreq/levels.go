package gpufreq

// buildLevelTable returns count clocks evenly spaced over [minClock,
// maxClock], ascending, with both endpoints included. count must be at
// least 2 and minClock < maxClock.
func buildLevelTable(minClock, maxClock uint32, count int) []uint32 {
	clocks := make([]uint32, count)
	span := maxClock - minClock
	step := span / uint32(count-1)

	for i := 0; i < count-1; i++ {
		clocks[i] = minClock + uint32(i)*step
	}
	clocks[count-1] = maxClock

	return clocks
}

// nearestLevel returns the index of the clock closest to mhz. Ties go to
// the lower level. clocks must be sorted ascending and non-empty.
func nearestLevel(clocks []uint32, mhz uint32) int {
	best := 0
	bestDist := distance(clocks[0], mhz)

	for i := 1; i < len(clocks); i++ {
		d := distance(clocks[i], mhz)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	return best
}

func distance(a, b uint32) uint32 {
	if a > b {
		return a - b
	}

	return b - a
}
