package models

// AuthState is the locally persisted administrative session.
type AuthState struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
}
