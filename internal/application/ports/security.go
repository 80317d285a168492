package ports

// PasswordHasher computes and checks one-way salted password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// TokenIssuer mints and verifies signed bearer tokens carrying a user id.
// Verify returns domain/errors.ErrInvalidToken for malformed, tampered, or
// expired tokens alike.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (userID string, err error)
}
