package mailsink

import (
	"errors"

	"github.com/emersion/go-sasl"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LOGIN server", func() {
	var (
		gotUser, gotPass string
		server           *loginServer
	)

	BeforeEach(func() {
		gotUser, gotPass = "", ""
		server = newLoginServer(func(username, password string) error {
			gotUser, gotPass = username, password
			if password != "changeme" {
				return errors.New("bad password")
			}
			return nil
		})
	})

	// Given a client sending the username as initial response
	// When it answers the password prompt
	// Then the credentials are checked once
	It("accepts the username as initial response", func() {
		challenge, done, err := server.Next([]byte("printer@local.test"))
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeFalse())
		Expect(challenge).To(Equal([]byte("Password:")))

		_, done, err = server.Next([]byte("changeme"))
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeTrue())
		Expect(gotUser).To(Equal("printer@local.test"))
		Expect(gotPass).To(Equal("changeme"))
	})

	It("prompts for the username without initial response", func() {
		challenge, done, err := server.Next(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeFalse())
		Expect(challenge).To(Equal([]byte("Username:")))

		challenge, _, err = server.Next([]byte("printer@local.test"))
		Expect(err).NotTo(HaveOccurred())
		Expect(challenge).To(Equal([]byte("Password:")))

		_, done, err = server.Next([]byte("changeme"))
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeTrue())
		Expect(gotUser).To(Equal("printer@local.test"))
	})

	It("reports a rejected password", func() {
		_, _, _ = server.Next([]byte("printer@local.test"))

		_, done, err := server.Next([]byte("wrong"))

		Expect(done).To(BeTrue())
		Expect(err).To(MatchError("bad password"))
	})

	It("rejects responses after completion", func() {
		_, _, _ = server.Next([]byte("printer@local.test"))
		_, _, _ = server.Next([]byte("changeme"))

		_, done, err := server.Next([]byte("more"))

		Expect(done).To(BeTrue())
		Expect(err).To(MatchError(sasl.ErrUnexpectedClientResponse))
	})
})
