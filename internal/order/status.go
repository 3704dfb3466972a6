package order

import (
	"errors"
	"fmt"
)

var ErrInvalidStatus = errors.New("invalid order status")

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusDone     Status = "Done"
	// Dashboard-only states; nothing in the workflow sets them.
	StatusCancelled Status = "Cancelled"
	StatusShipped   Status = "Shipped"
)

var known = map[Status]bool{
	StatusPending:   true,
	StatusAccepted:  true,
	StatusDone:      true,
	StatusCancelled: true,
	StatusShipped:   true,
}

// ParseStatus rejects unknown status strings. Transitions between known
// statuses are deliberately unrestricted (Done straight from Pending is a
// supported dashboard action), only the value set itself is closed.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !known[st] {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// ApplyTransition moves o to the target status and adjusts the delivery
// assignment: Accepted with a provider id assigns that provider, going back
// to Pending clears any assignment, every other status leaves it alone.
func ApplyTransition(o *Order, to Status, deliveryID string) {
	o.Status = to
	switch {
	case to == StatusAccepted && deliveryID != "":
		o.DeliveryID = deliveryID
	case to == StatusPending:
		o.DeliveryID = ""
	}
}
