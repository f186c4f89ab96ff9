package domain

// User is the stored account record. The service only reads and creates
// users; it never mutates a record in place.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
}
