package domain

import "time"

// AccessToken is a signed credential issued at login.
type AccessToken struct {
	Token           string
	AdmissionNumber string
	IssuedAt        time.Time
	ExpiresAt       time.Time
}
