package parity

func even(n int) int {
	k := 2 * n
	if k%2 == 1 { // want `ABS002: if condition k % 2 == 1 is always false`
		return 1
	}
	return 0
}

func step(n int) int {
	k := 4*n + 1
	if k%2 == 1 {
		return k
	}
	return 0
}
