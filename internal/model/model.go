package model

// Package model contains domain models/data structures.
// No business logic here.

// Actor is the authenticated identity performing an operation. It is
// resolved upstream (auth gateway) and passed explicitly into every
// state-changing service call rather than read from ambient session state.
type Actor struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}
