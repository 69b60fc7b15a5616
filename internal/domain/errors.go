package domain

import "errors"

// Errors surfaced to clients as onError events. Anything not in this
// list is reported as a generic failure so internals never leak.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrAccessDenied = errors.New("access denied")

	ErrInvalidSlipImage = errors.New("invalid slip image")
	ErrInvalidLast4     = errors.New("invalid last 4 digits")
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseFree       = errors.New("course is free")
	ErrAlreadyOwned     = errors.New("course already bought")
	ErrPaymentPending   = errors.New("a payment for this course is already waiting for confirmation")

	ErrPaymentNotFound = errors.New("payment not found")
	ErrAlreadyConfirmed = errors.New("payment is already confirmed")
	ErrAlreadyCanceled  = errors.New("payment is already canceled")
)

// ClientMessage maps err to the message sent over the wire.
func ClientMessage(err error) string {
	for _, known := range []error{
		ErrUnauthorized, ErrAccessDenied,
		ErrInvalidSlipImage, ErrInvalidLast4,
		ErrCourseNotFound, ErrCourseFree, ErrAlreadyOwned, ErrPaymentPending,
		ErrPaymentNotFound, ErrAlreadyConfirmed, ErrAlreadyCanceled,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "something went wrong"
}
