// Package combine builds a domain out of two others evolving side by side. Cross-domain
// reasoning is plugged in with a [Refinement], which sees both components at order
// checks, joins and assignments.
package combine
