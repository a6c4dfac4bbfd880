package utils

import "golang.org/x/crypto/bcrypt"

// Magic-link tokens are stored hashed so a leaked cache dump cannot be
// replayed as a sign-in link.
func HashToken(tok string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(tok), bcrypt.DefaultCost)
	return string(b)
}

func CheckToken(tok, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(tok)) == nil
}
