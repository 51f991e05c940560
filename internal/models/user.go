package models

// User is a registered account. The password field holds a bcrypt hash,
// never the plaintext credential.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
