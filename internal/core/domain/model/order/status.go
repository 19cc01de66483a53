package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Unknown (0) catches zero values.
//
// The happy path is PENDING -> CONFIRMED -> PREPARING -> READY -> SHIPPING ->
// DELIVERED. CANCELLED is reachable from the first three steps only.
type Status int

const (
	// Unknown is the zero value and never a stored status.
	Unknown Status = iota
	// Pending orders wait for the shop to confirm them.
	Pending
	// Confirmed orders were accepted by the shop.
	Confirmed
	// Preparing orders are being cooked or packed.
	Preparing
	// Ready orders wait for a shipper to accept them.
	Ready
	// Shipping orders are on the way with their assigned shipper.
	Shipping
	// Delivered is terminal.
	Delivered
	// Cancelled is terminal.
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Confirmed: "CONFIRMED",
	Preparing: "PREPARING",
	Ready:     "READY",
	Shipping:  "SHIPPING",
	Delivered: "DELIVERED",
	Cancelled: "CANCELLED",
}

// transitions lists, for each status, the statuses it may move to.
// Terminal statuses have no entry.
var transitions = map[Status][]Status{
	Pending:   {Confirmed, Cancelled},
	Confirmed: {Preparing, Cancelled},
	Preparing: {Ready, Cancelled},
	Ready:     {Shipping},
	Shipping:  {Delivered},
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Ready, Shipping, Delivered, Cancelled}
}

// ParseStatus converts a wire name such as "READY" into a Status. Matching
// ignores case and surrounding spaces.
//
// Returns:
//   - the matching Status
//   - Unknown and an errs.ErrValueIsInvalid error for any other input
func ParseStatus(s string) (Status, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == upper {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known order status", s))
}

// String returns the wire name, or "UNKNOWN" for values outside the enum.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and values outside the enum.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// MarshalText encodes the status by name in JSON and query strings.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText and accepts what ParseStatus
// accepts.
func (s *Status) UnmarshalText(data []byte) error {
	parsed, err := ParseStatus(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CanTransitionTo reports whether the table allows s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateTransition fails with ErrInvalidTransition unless from -> to is in
// the transition table.
func ValidateTransition(from, to Status) error {
	if from.CanTransitionTo(to) {
		return nil
	}
	return ErrInvalidTransition.WithMessage("cannot move order from %s to %s", from, to)
}

// IsTerminal reports whether s is DELIVERED or CANCELLED. It is the function
// form of Status.IsTerminal.
func IsTerminal(s Status) bool {
	return s.IsTerminal()
}

// CanCustomerCancel reports whether a customer may cancel an order in s:
// PENDING, CONFIRMED or PREPARING. Once the order is READY a shipper may
// already be on the way.
func CanCustomerCancel(s Status) bool {
	return s == Pending || s == Confirmed || s == Preparing
}

// CanOwnerCancel reports whether the shop owner may cancel an order in s.
// Owners cancel only orders they confirmed (CONFIRMED or PREPARING); a
// PENDING order is declined by not confirming it.
func CanOwnerCancel(s Status) bool {
	return s == Confirmed || s == Preparing
}
