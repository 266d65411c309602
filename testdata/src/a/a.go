package a

func nested(x int) int {
	if x > 10 {
		if x > 5 { // want `ABS001: if condition x > 5 is always true`
			return 1
		}
	}
	return 0
}

func never(x int) int {
	if x < 0 {
		if x > 3 { // want `ABS002: if condition x > 3 is always false`
			return 1
		}
	}
	return 0
}

func below(x, y int) int {
	if x >= 0 && x < y {
		if y-x > 0 { // want `ABS001: if condition y - x > 0 is always true`
			return y - x
		}
	}
	return 0
}

func wrapping(x, y int) int {
	if x < y {
		if y-x > 0 {
			return y - x
		}
	}
	return 0
}

func next(y int) int {
	if y+1 > y {
		return 1
	}
	return 0
}

func bumped(y int) int {
	if y < 100 {
		if y+1 > y { // want `ABS001: if condition y \+ 1 > y is always true`
			return 1
		}
	}
	return 0
}

func div(x, y int) int {
	if y == 0 {
		return x / y // want `ABS010: divisor y is always zero`
	}
	return x / y
}

func loop() int {
	s := 0
	for i := 0; i < 10; i++ {
		s += i
	}
	return s
}

func skip(n int) int {
	s := 0
	if n > 0 {
		for i := n; i < 0; i++ { // want `ABS002: for condition i < 0 is always false`
			s++
		}
	}
	return s
}

func sign(x int) int {
	if x > 0 {
		switch {
		case x < 0: // want `ABS002: case condition x < 0 is always false`
			return -1
		case x == 0: // want `ABS002: case condition x == 0 is always false`
			return 0
		}
	}
	return 1
}

func opaque(s []int) int {
	if len(s) > 0 {
		return s[0]
	}
	return 0
}
