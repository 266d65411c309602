// Package pentagon implements the pentagon domain: intervals of variables together with
// strict upper bounds between them.
//
// Either component alone loses facts the pair keeps. After
//
//	if y > 0 && x > y {
//		r := x - y
//	}
//
// intervals alone cannot tell r > 0 and bounds alone cannot tell r < x, the pentagon
// knows both.
package pentagon
