package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/smtp-gateway-agent/internal/server/middlewares"
	"github.com/kubev2v/smtp-gateway-agent/internal/services"
)

var _ = Describe("BasicAuth", func() {
	var router *gin.Engine

	newRouter := func(auth *services.Authenticator) *gin.Engine {
		r := gin.New()
		g := r.Group("/api/v1", middlewares.Logger(), middlewares.BasicAuth(auth, "/api/v1/login"))
		g.GET("/gateway", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	Context("when the gate is configured", func() {
		BeforeEach(func() {
			router = newRouter(services.NewAuthenticator("admin", "secret"))
		})

		// Given a gated route
		// When the request carries no credentials
		// Then it should be rejected with 401
		It("rejects requests without credentials", func() {
			// Arrange
			req := httptest.NewRequest(http.MethodGet, "/api/v1/gateway", nil)
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Header().Get("WWW-Authenticate")).To(ContainSubstring("Basic"))
		})

		It("rejects wrong credentials", func() {
			// Arrange
			req := httptest.NewRequest(http.MethodGet, "/api/v1/gateway", nil)
			req.SetBasicAuth("admin", "nope")
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("accepts matching credentials", func() {
			// Arrange
			req := httptest.NewRequest(http.MethodGet, "/api/v1/gateway", nil)
			req.SetBasicAuth("admin", "secret")
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("lets the login route through", func() {
			// Arrange
			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})

	Context("when the gate is open", func() {
		BeforeEach(func() {
			router = newRouter(services.NewAuthenticator("", ""))
		})

		It("accepts requests without credentials", func() {
			// Arrange
			req := httptest.NewRequest(http.MethodGet, "/api/v1/gateway", nil)
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})
})
