package quiet

func nested(x int) int {
	if x > 10 {
		if x > 5 {
			return 1
		}
	}
	return 0
}

func div(x, y int) int {
	if y == 0 {
		return x / y
	}
	return 0
}
