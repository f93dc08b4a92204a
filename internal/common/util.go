package common

// WipeByteArray zeroes b in place. Used for passwords read from the terminal.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// BearerToken formats an Authorization header value.
func BearerToken(token string) string {
	return "Bearer " + token
}
