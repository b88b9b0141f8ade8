package domain

// User is the resolved renter identity supplied by the external auth
// collaborator. The core only reads it for ownership checks and
// notification addressing.
type User struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
