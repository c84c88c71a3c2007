package entity

import "time"

// AuthToken is a signed bearer token and its absolute expiry.
type AuthToken struct {
	Token     string
	ExpiresAt time.Time
}
