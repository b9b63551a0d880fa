package mailsink

import (
	"bytes"
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/emersion/go-sasl"
)

const CramMD5 = "CRAM-MD5"

// cramMD5Server implements the server side of RFC 2195.
type cramMD5Server struct {
	domain    string
	challenge []byte
	verify    func(username string, digest, challenge []byte) error
}

var _ sasl.Server = (*cramMD5Server)(nil)

func newCramMD5Server(domain string, verify func(username string, digest, challenge []byte) error) *cramMD5Server {
	return &cramMD5Server{domain: domain, verify: verify}
}

func (s *cramMD5Server) Next(response []byte) (challenge []byte, done bool, err error) {
	if s.challenge == nil {
		if len(response) > 0 {
			return nil, true, sasl.ErrUnexpectedClientResponse
		}
		s.challenge = fmt.Appendf(nil, "<%d.%d@%s>", os.Getpid(), time.Now().UnixNano(), s.domain)
		return s.challenge, false, nil
	}

	username, hexDigest, ok := bytes.Cut(response, []byte{' '})
	if !ok {
		return nil, true, fmt.Errorf("malformed CRAM-MD5 response")
	}

	digest := make([]byte, hex.DecodedLen(len(hexDigest)))
	if _, err := hex.Decode(digest, hexDigest); err != nil {
		return nil, true, fmt.Errorf("malformed CRAM-MD5 digest: %w", err)
	}

	return nil, true, s.verify(string(username), digest, s.challenge)
}

// cramMD5Digest is HMAC-MD5 of the challenge keyed with the password.
func cramMD5Digest(password string, challenge []byte) []byte {
	d := hmac.New(md5.New, []byte(password))
	d.Write(challenge)
	return d.Sum(nil)
}
