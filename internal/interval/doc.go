// Package interval implements the interval value domain over int64 extended with ±∞.
//
// Go integers wrap on overflow, so any bound computation that overflows makes the whole
// result Top instead of saturating.
package interval
