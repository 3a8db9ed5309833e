package auth

import "errors"

var (
	// InvalidCredentialsErr covers both an unknown identity and a wrong
	// password. The two cases must never be distinguishable externally.
	InvalidCredentialsErr = errors.New("invalid credentials")
	LastAdminErr          = errors.New("cannot remove the last administrator")
	AdminExistsErr        = errors.New("administrator already exists")
)
