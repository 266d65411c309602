// Package equality implements the equality domain: a partition of program variables
// into classes of variables proven to hold the same value.
//
// Variables belonging to no class are only known to equal themselves. The partition is
// persistent: operations build new class lists and never touch existing ones.
package equality
