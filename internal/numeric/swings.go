package numeric

// LocalMaxima returns the indices i in [w, len-w) whose value equals the
// maximum of the inclusive window [i-w, i+w]. Ties all qualify.
func LocalMaxima(values []float64, w int) []int {
	return localExtrema(values, w, func(candidate, other float64) bool { return other > candidate })
}

// LocalMinima mirrors LocalMaxima.
func LocalMinima(values []float64, w int) []int {
	return localExtrema(values, w, func(candidate, other float64) bool { return other < candidate })
}

func localExtrema(values []float64, w int, beaten func(candidate, other float64) bool) []int {
	var idx []int
	for i := w; i < len(values)-w; i++ {
		extreme := true
		for j := i - w; j <= i+w; j++ {
			if beaten(values[i], values[j]) {
				extreme = false
				break
			}
		}
		if extreme {
			idx = append(idx, i)
		}
	}
	return idx
}
