package services

import "errors"

// Signup failures.
var (
	ErrDuplicateAccount    = errors.New("account with this email already exists")
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidNationalID   = errors.New("invalid national id")
	ErrInvalidLicensePlate = errors.New("invalid license plate")
)

// Lookup and ride request failures.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrRideNotFound       = errors.New("ride not found")
	ErrNotAPassenger      = errors.New("account is not a passenger")
	ErrOutstandingRide    = errors.New("passenger already has an outstanding ride")
	ErrInvalidRideRequest = errors.New("invalid ride request")
)
