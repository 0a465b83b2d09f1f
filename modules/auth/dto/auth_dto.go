package dto

// GoogleAuthURLResponse carries the provider authorization URL.
type GoogleAuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// LoginResponse is returned after a successful code exchange. AccessToken
// is the app JWT; UserID is the stable identity id from the provider.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}
