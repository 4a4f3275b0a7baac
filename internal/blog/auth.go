package blog

import (
	"time"
)

// authTTL is how long an issued auth token stays usable. The gateway
// tolerates somewhat older tokens, so there is no refresh margin.
const authTTL = 600 * time.Second

// authSession holds one bearer token and the operations waiting for it.
// Tokens are acquired lazily: the first data call that needs one triggers
// the exchange, later callers chain onto the same in-flight request.
type authSession struct {
	token    string
	acquired time.Time
	inFlight bool
	waiting  []func(token string, ok bool)

	now func() time.Time
}

func newAuthSession() *authSession {
	return &authSession{now: time.Now}
}

// validToken returns the current token if it has not expired.
func (s *authSession) validToken() (string, bool) {
	if s.token == "" {
		return "", false
	}

	if s.now().Sub(s.acquired) > authTTL {
		return "", false
	}

	return s.token, true
}

// accept stores a freshly exchanged token.
func (s *authSession) accept(token string) {
	s.token = token
	s.acquired = s.now()
}

// takeWaiting returns and clears the queued continuations, ending the
// in-flight exchange.
func (s *authSession) takeWaiting() []func(token string, ok bool) {
	waiting := s.waiting
	s.waiting = nil
	s.inFlight = false

	return waiting
}
