package luno

// Credentials holds an API key id and secret for HTTP Basic authentication.
// They are attached to every request; the exchange issues no session tokens.
// No local validation is performed, so a bad key only ever surfaces as an
// authentication rejection from the remote service.
type Credentials struct {
	key    string
	secret string
}

// NewCredentials returns an immutable credential pair.
func NewCredentials(key, secret string) Credentials {
	return Credentials{key: key, secret: secret}
}

// Key returns the API key id.
func (c Credentials) Key() string {
	return c.key
}

// Secret returns the API secret.
func (c Credentials) Secret() string {
	return c.secret
}
