package lunar

import "errors"

var (
	// ErrInvalidDate is returned when a lunar date is outside the supported
	// range, has an impossible day or month, or asks for a leap month the
	// year does not have.
	ErrInvalidDate = errors.New("invalid lunar date")

	// ErrInvalidState is returned when a decoded month list is empty or has
	// no anchor. It indicates a defect in the year code data.
	ErrInvalidState = errors.New("lunar months data is invalid or empty")

	// ErrOutOfRange is returned when a day precedes every available month.
	ErrOutOfRange = errors.New("out of calculation range")
)
