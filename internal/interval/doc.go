// Package interval provides time interval primitives for availability
// calculations: overlap testing, busy-interval merging, free-gap
// derivation and fixed-duration window slicing.
//
// Boundary policy: two intervals that merely touch (a.End == b.Start)
// do NOT overlap, so a booking may start exactly when another ends.
// Merging, however, joins touching intervals into one. This asymmetry
// is intentional: back-to-back busy blocks collapse into a single busy
// span, while back-to-back bookings are not a conflict.
package interval
