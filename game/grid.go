package game

// cell is a grid coordinate shared by the snake and rogue worlds.
type cell struct {
	x, y int
}

// parseDirection maps a direction word to unit deltas. ok is false for
// anything that is not a direction.
func parseDirection(word string) (dx, dy int, ok bool) {
	switch word {
	case "UP":
		return 0, -1, true
	case "DOWN":
		return 0, 1, true
	case "LEFT":
		return -1, 0, true
	case "RIGHT":
		return 1, 0, true
	}
	return 0, 0, false
}
