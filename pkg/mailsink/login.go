package mailsink

import "github.com/emersion/go-sasl"

var (
	usernameChallenge = []byte("Username:")
	passwordChallenge = []byte("Password:")
)

// loginServer implements the server side of the LOGIN mechanism. The
// username may come as the initial response or after a Username: prompt.
type loginServer struct {
	username     string
	gotUsername  bool
	done         bool
	authenticate func(username, password string) error
}

var _ sasl.Server = (*loginServer)(nil)

func newLoginServer(authenticate func(username, password string) error) *loginServer {
	return &loginServer{authenticate: authenticate}
}

func (s *loginServer) Next(response []byte) (challenge []byte, done bool, err error) {
	switch {
	case s.done:
		return nil, true, sasl.ErrUnexpectedClientResponse
	case !s.gotUsername && response == nil:
		return usernameChallenge, false, nil
	case !s.gotUsername:
		s.username = string(response)
		s.gotUsername = true
		return passwordChallenge, false, nil
	}

	s.done = true
	return nil, true, s.authenticate(s.username, string(response))
}
