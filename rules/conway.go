package rules

/*
ApplyConwayRules returns whether a cell is alive in the next generation under B3/S23.

	alive, neighbors < 2   -> dies (underpopulation)
	alive, neighbors 2..3  -> lives
	alive, neighbors > 3   -> dies (overpopulation)
	dead,  neighbors == 3  -> born (reproduction)
	otherwise              -> unchanged
*/
func ApplyConwayRules(neighbors uint8, alive bool) bool {
	switch {
	case alive && neighbors < 2:
		return false
	case alive && (neighbors == 2 || neighbors == 3):
		return true
	case alive && neighbors > 3:
		return false
	case !alive && neighbors == 3:
		return true
	default:
		return alive
	}
}
