package entity

// AuthorizationClaim identifies who is acting on a participant response:
// either a signed-in identity or an anonymous caller presenting the token
// handed out at join time. Both variants compare uniformly against the
// stored response token.
type AuthorizationClaim struct {
	signedIn bool
	value    string
}

func SignedIn(userID string) AuthorizationClaim {
	return AuthorizationClaim{signedIn: true, value: userID}
}

func Anonymous(token string) AuthorizationClaim {
	return AuthorizationClaim{signedIn: false, value: token}
}

func (c AuthorizationClaim) IsSignedIn() bool {
	return c.signedIn
}

// UserID returns the identity id for signed-in claims, "" otherwise.
func (c AuthorizationClaim) UserID() string {
	if !c.signedIn {
		return ""
	}
	return c.value
}

// Token is the value compared against a participant's stored token: the
// identity id for signed-in callers, the client-held secret for anonymous
// ones.
func (c AuthorizationClaim) Token() string {
	return c.value
}

// Empty reports whether the claim carries nothing to compare.
func (c AuthorizationClaim) Empty() bool {
	return c.value == ""
}
