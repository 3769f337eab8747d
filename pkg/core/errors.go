package core

import "errors"

// Common errors.
var (
	ErrInvalidProjectName = errors.New("project name violates naming convention")
	ErrUnknownSensor      = errors.New("sensor is not defined for this node")
	ErrSensorNotEnabled   = errors.New("sensor is not enabled for this project")
	ErrUnknownSite        = errors.New("site is not declared in the project summary")
	ErrInvalidDate        = errors.New("invalid date")
	ErrFutureDate         = errors.New("future dates are not allowed")
	ErrHistoricalDate     = errors.New("date is older than the allowed window")
	ErrChecksumMismatch   = errors.New("field log checksum mismatch")
)
