package finder

// CoarseGrid returns the ordered probe timestamps for a video of the given
// duration: 0, interval, 2*interval, ... strictly below duration. It is a pure
// function of its inputs so a scan can be re-run deterministically.
func CoarseGrid(durationSeconds float64, intervalSeconds float64) []float64 {
	if durationSeconds <= 0 || intervalSeconds <= 0 {
		return nil
	}
	count := int(durationSeconds / intervalSeconds)
	if float64(count)*intervalSeconds < durationSeconds {
		count++
	}
	grid := make([]float64, 0, count)
	for ts := 0.0; ts < durationSeconds; ts += intervalSeconds {
		grid = append(grid, ts)
	}
	return grid
}
