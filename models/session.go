package models

// Session is the payload returned by a successful login: the bearer token to
// persist plus the authenticated account.
type Session struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// Registration carries the fields the register endpoint accepts. Password
// travels only on this request and is never cached locally.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`
}
