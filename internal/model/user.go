// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// User is the identity record returned by the backend on login.
//
// The backend owns this record; we only display it (navbar greeting) and
// persist it alongside the bearer token so a restart doesn't log the user out.
// Beyond display, the fields are opaque to us.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
