// Package order contains the Order aggregate of the marketplace together with
// its lifecycle state machine.
//
// An order moves through
//
//	PENDING ─> CONFIRMED ─> PREPARING ─> READY ─> SHIPPING ─> DELIVERED
//	   │           │            │
//	   └───────────┴────────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal. Every status change goes through
// ValidateTransition, so the table in status.go is the single source of truth.
// Money amounts are integer minor units.
package order
