package indicators

// SwingLows scans values for local minima. A swing low at index i is a value
// strictly below every other value within radius bars on both sides, so the
// last radius bars can never qualify. Lows closer than minSeparation bars to
// the previously accepted low are dropped. Indices are returned in
// chronological order.
func SwingLows(values []float64, radius, minSeparation int) []int {
	if radius <= 0 || len(values) < 2*radius+1 {
		return nil
	}

	var lows []int
	for i := radius; i < len(values)-radius; i++ {
		isLow := true
		for j := i - radius; j <= i+radius; j++ {
			if j == i {
				continue
			}
			if values[j] <= values[i] {
				isLow = false
				break
			}
		}
		if !isLow {
			continue
		}
		if len(lows) > 0 && i-lows[len(lows)-1] < minSeparation {
			// Keep the deeper of the two crowded lows.
			if values[i] < values[lows[len(lows)-1]] {
				lows[len(lows)-1] = i
			}
			continue
		}
		lows = append(lows, i)
	}
	return lows
}
