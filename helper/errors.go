package helper

import (
	"errors"
	"fmt"
)

var (
	ErrSeatNotFound      = errors.New("seat not found")
	ErrUnknownCode       = errors.New("unknown pod code")
	ErrGroupNotFound     = errors.New("group order not found")
	ErrGroupNotOpen      = errors.New("group order is not open")
	ErrAlreadyLinked     = errors.New("seat already linked to a dual pod")
	ErrNotLinked         = errors.New("seat is not part of a dual pod")
	ErrCrossLocation     = errors.New("seats belong to different locations")
	ErrSelfLink          = errors.New("cannot link a seat with itself")
	ErrSeatConflict      = errors.New("seat is no longer available")
	ErrInsufficientSeats = errors.New("not enough available seats")
	ErrNoActiveOrder     = errors.New("no active order for this pod")
	ErrAlreadyMember     = errors.New("order already joined this group")
)

// PartialPaymentError: một đơn trong nhóm mark-paid thất bại.
// Các đơn đã PAID trước đó không tự rollback, caller chịu trách nhiệm bù trừ.
type PartialPaymentError struct {
	PaidOrderRefs  []string
	FailedOrderRef string
	Err            error
}

func (e *PartialPaymentError) Error() string {
	return fmt.Sprintf("payment failed for order %s after %d orders paid: %v", e.FailedOrderRef, len(e.PaidOrderRefs), e.Err)
}

func (e *PartialPaymentError) Unwrap() error {
	return e.Err
}
