package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/smtp-gateway-agent/api/v1"
	"github.com/kubev2v/smtp-gateway-agent/internal/handlers"
	srvErrors "github.com/kubev2v/smtp-gateway-agent/pkg/errors"
)

var _ = Describe("Login Handler", func() {
	var (
		mockAuth *MockAuthenticator
		router   *gin.Engine
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		mockAuth = &MockAuthenticator{}
		handler := handlers.New(&MockGatewayService{}, &MockConnectionTester{}, mockAuth)
		router = gin.New()
		v1.RegisterHandlers(router, handler)
	})

	post := func(body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should accept valid credentials", func() {
		body, _ := json.Marshal(v1.LoginRequest{Username: "admin", Password: "s3cret"})

		w := post(body)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(mockAuth.LastUsername).To(Equal("admin"))
		Expect(mockAuth.LastPassword).To(Equal("s3cret"))
		var response v1.LoginResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
		Expect(response.Authenticated).To(BeTrue())
	})

	It("should return 401 for invalid credentials", func() {
		mockAuth.VerifyError = srvErrors.NewInvalidCredentialsError()
		body, _ := json.Marshal(v1.LoginRequest{Username: "admin", Password: "wrong"})

		w := post(body)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should return 400 for invalid JSON body", func() {
		w := post([]byte("{"))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
