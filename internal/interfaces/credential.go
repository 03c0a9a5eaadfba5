package interfaces

// PasswordHasher derives and checks stored credential secrets.
type PasswordHasher interface {
	Derive(plaintext string) (string, error)
	Verify(plaintext, storedSecret string) bool
}
