package domain

// Principal is the authenticated operator's profile as reported by the
// benchmark backend. Exactly one Principal exists per active session; it is
// fetched by the subject id encoded in the access token.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Staff    bool   `json:"is_staff"`
}

// Capability is the derived permission projection used for view gating.
// Staff implies Authenticated. It is never stored, only recomputed.
type Capability struct {
	Authenticated bool `json:"authenticated"`
	Staff         bool `json:"is_staff"`
}
