package certificates_test

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/smtp-gateway-agent/pkg/certificates"
)

var _ = Describe("Certification Provider", func() {
	Context("self signed certificate", func() {
		It("generates successfully", func() {
			cert, key, err := certificates.GenerateSelfSignedCertificate(time.Now().Add(10 * time.Second))
			Expect(err).To(BeNil())
			Expect(key).ToNot(BeNil())

			data := x509.MarshalPKCS1PrivateKey(key)
			Expect(len(data) > 0).To(BeTrue())

			Expect(cert.Issuer.Organization).Should(ContainElement("SMTP Gateway Agent"))
			Expect(cert.Subject.OrganizationalUnit).Should(ContainElement("Device Mail"))
		})

		// Given a certificate with a future expiry
		// When we check the certificate validity
		// Then NotBefore should be before NotAfter
		It("has correct validity period", func() {
			expiry := time.Now().Add(24 * time.Hour)
			cert, _, err := certificates.GenerateSelfSignedCertificate(expiry)
			Expect(err).To(BeNil())

			Expect(cert.NotBefore).To(BeTemporally("<", cert.NotAfter))
			Expect(cert.NotAfter).To(BeTemporally("~", expiry, time.Second))
		})

		It("supports server authentication", func() {
			cert, _, err := certificates.GenerateSelfSignedCertificate(time.Now().Add(time.Hour))
			Expect(err).To(BeNil())

			Expect(cert.ExtKeyUsage).To(ContainElement(x509.ExtKeyUsageServerAuth))
			Expect(cert.IsCA).To(BeTrue())
		})

		// Given a list of hosts
		// When we generate a certificate
		// Then IPs and names land in the matching SAN lists
		It("adds hosts as subject alternative names", func() {
			cert, _, err := certificates.GenerateSelfSignedCertificate(time.Now().Add(time.Hour), "localhost", "127.0.0.1")
			Expect(err).To(BeNil())

			Expect(cert.DNSNames).To(ConsistOf("localhost"))
			Expect(cert.IPAddresses).To(HaveLen(1))
			Expect(cert.IPAddresses[0].Equal(net.ParseIP("127.0.0.1"))).To(BeTrue())
			Expect(cert.VerifyHostname("localhost")).To(Succeed())
		})

		It("uses a distinct serial number per certificate", func() {
			a, _, err := certificates.GenerateSelfSignedCertificate(time.Now().Add(time.Hour))
			Expect(err).To(BeNil())
			b, _, err := certificates.GenerateSelfSignedCertificate(time.Now().Add(time.Hour))
			Expect(err).To(BeNil())

			Expect(a.SerialNumber.Cmp(b.SerialNumber)).NotTo(Equal(0))
		})
	})

	Context("tls config", func() {
		It("builds a server config with the certificate", func() {
			cfg, err := certificates.NewSelfSignedTLSConfig(time.Now().Add(time.Hour), "localhost")
			Expect(err).To(BeNil())

			Expect(cfg.Certificates).To(HaveLen(1))
			Expect(cfg.MinVersion).To(Equal(uint16(tls.VersionTLS12)))

			leaf, err := x509.ParseCertificate(cfg.Certificates[0].Certificate[0])
			Expect(err).To(BeNil())
			Expect(leaf.DNSNames).To(ContainElement("localhost"))
		})
	})
})
