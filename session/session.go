package session

// Session is the credential state a presentation context hands to every
// controller operation. It is a closed set: Authenticated or Anonymous.
type Session interface {
	sealed()
}

// Authenticated carries the bearer token and the signed-in client id.
type Authenticated struct {
	Token    string
	ClientID int64
}

func (Authenticated) sealed() {}

// Anonymous is the signed-out state. Controllers degrade to local-only
// behavior when they receive it.
type Anonymous struct{}

func (Anonymous) sealed() {}

// Credentials unpacks an authenticated session, reporting false for Anonymous.
func Credentials(s Session) (Authenticated, bool) {
	auth, ok := s.(Authenticated)
	return auth, ok
}
