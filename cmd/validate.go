package cmd

import "regexp"

// minPasswordLen matches the server's registration policy
const minPasswordLen = 6

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// isValidEmail performs a basic shape check; the server remains the
// authority on deliverability
func isValidEmail(email string) bool {
	return emailRx.MatchString(email)
}

// isValidPassword checks the minimum length policy
func isValidPassword(password string) bool {
	return len(password) >= minPasswordLen
}
