package domain

// AuthState represents the lifecycle state of the console session.
type AuthState string

const (
	StateUninitialized AuthState = "uninitialized"
	StateRestoring     AuthState = "restoring"
	StateAuthenticated AuthState = "authenticated"
	StateAnonymous     AuthState = "anonymous"
)

// Session is the durable access/refresh token pair obtained at login.
// The refresh token is stored for completeness but never presented to a
// refresh endpoint: an expired access token always forces a full logout.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
