// Package negotiation renders the user-facing lines for booking
// resolution outcomes and the message sent to the owner of a
// conflicting booking. Delivery to the other party is the caller's
// responsibility.
package negotiation
