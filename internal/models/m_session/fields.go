package m_session

// Storage key and values of the persisted login flag.
const (
	StorageKey = "isLoggedIn"

	ValueTrue  = "true"
	ValueFalse = "false"
)
