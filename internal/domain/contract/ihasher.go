package contract

// IHasher wraps the one-way password hash.
type IHasher interface {
	HashPassword(password string) (string, error)
	// ComparePasswordHash returns nil when password matches hashedPassword.
	ComparePasswordHash(password, hashedPassword string) error
}
