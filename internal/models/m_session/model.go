package m_session

// Encode renders the login flag.
func Encode(loggedIn bool) string {
	if loggedIn {
		return ValueTrue
	}
	return ValueFalse
}

// Decode reads the login flag. Only the exact string "true" means logged in;
// a missing or unexpected value means logged out.
func Decode(value string, ok bool) bool {
	return ok && value == ValueTrue
}
