package models

// Identity is the acting user as vouched for by the identity provider.
// A nil *Identity stands for an anonymous caller.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
