package models

// Identity is the caller resolved from a Supabase access token.
type Identity struct {
	ID     string
	Email  string
	Role   string
	Claims map[string]interface{}
}
