package smtpprobe

import (
	"crypto/hmac"
	"crypto/md5"
	"fmt"

	"github.com/emersion/go-sasl"
)

const cramMD5 = "CRAM-MD5"

type cramMD5Client struct {
	username string
	secret   string
}

// NewCramMD5Client returns a client for the RFC 2195 CRAM-MD5 mechanism.
func NewCramMD5Client(username, secret string) sasl.Client {
	return &cramMD5Client{username: username, secret: secret}
}

func (c *cramMD5Client) Start() (mech string, ir []byte, err error) {
	return cramMD5, nil, nil
}

func (c *cramMD5Client) Next(challenge []byte) ([]byte, error) {
	d := hmac.New(md5.New, []byte(c.secret))
	d.Write(challenge)
	return fmt.Appendf(nil, "%s %x", c.username, d.Sum(nil)), nil
}
