// Package entities defines the core domain models for the ride-hailing system.
// These structs represent the business concepts (Account, Ride, Location)
// and live in the innermost layer of the architecture; they have no dependencies
// on storage or transport.
package entities

// Account is a registered user. A single account may act as a passenger, a
// driver, or both; the two role flags are independent.
//
// Accounts are created once through signup and never updated afterwards.
// LicensePlate is only meaningful (and only validated) for drivers.
type Account struct {
	ID           string `json:"account_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	NationalID   string `json:"national_id"`
	LicensePlate string `json:"license_plate,omitempty"`
	IsPassenger  bool   `json:"is_passenger"`
	IsDriver     bool   `json:"is_driver"`
}

// NewAccount assembles an Account record. Validation is the caller's job;
// the license plate is dropped for non-drivers so it is never stored for an
// account that cannot use it.
func NewAccount(id, name, email, nationalID, licensePlate string, isPassenger, isDriver bool) *Account {
	if !isDriver {
		licensePlate = ""
	}
	return &Account{
		ID:           id,
		Name:         name,
		Email:        email,
		NationalID:   nationalID,
		LicensePlate: licensePlate,
		IsPassenger:  isPassenger,
		IsDriver:     isDriver,
	}
}
