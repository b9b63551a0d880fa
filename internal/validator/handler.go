// Package validator serves the SMTP validation API the agent delegates its
// connection tests to.
//
//	GET  /           service banner
//	GET  /health     liveness
//	POST /test-smtp  runs one probe, 422 on an invalid request, 429 when rate limited
package validator

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kubev2v/smtp-gateway-agent/internal/models"
	"github.com/kubev2v/smtp-gateway-agent/pkg/mask"
	"github.com/kubev2v/smtp-gateway-agent/pkg/smtpprobe"
	api "github.com/kubev2v/smtp-gateway-agent/pkg/validator"
)

const (
	ServiceName   = "sharp-smtp-validator"
	serviceStatus = "Sharp SMTP Validator API - Running"
)

type Prober interface {
	Probe(ctx context.Context, t smtpprobe.Target) smtpprobe.Result
}

type Options struct {
	Version string
	// RateLimit is the sustained number of probes per second. Zero disables limiting.
	RateLimit float64
	RateBurst int
}

type Handler struct {
	prober   Prober
	validate *validator.Validate
	limiter  *rate.Limiter
	version  string
}

func NewHandler(prober Prober, opts Options) *Handler {
	h := &Handler{
		prober:   prober,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		version:  opts.Version,
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return h
}

func (h *Handler) Register(router *gin.RouterGroup) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.POST("/test-smtp", h.TestSMTP)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, api.Info{Status: serviceStatus, Version: h.version})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": ServiceName})
}

func (h *Handler) TestSMTP(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		return
	}

	var req api.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationMessage(err)})
		return
	}

	zap.S().Named("validator").Infow("smtp test requested",
		"host", req.PrimaryGateway,
		"port", *req.PrimaryPort,
		"ssl", req.UseSSL,
		"auth", req.SMTPAuth,
		"user", mask.Username(req.DeviceUserid),
	)

	result := h.prober.Probe(c.Request.Context(), smtpprobe.Target{
		Host:     req.PrimaryGateway,
		Port:     *req.PrimaryPort,
		SSL:      models.SSLMode(req.UseSSL),
		Auth:     models.AuthMechanism(req.SMTPAuth),
		Username: req.DeviceUserid,
		Password: req.DevicePassword,
	})

	c.JSON(http.StatusOK, newResponse(result))
}

func newResponse(r smtpprobe.Result) api.Response {
	details := make([]api.Detail, 0, len(r.Details))
	for _, d := range r.Details {
		details = append(details, api.Detail{Type: d.Kind, Message: d.Message})
	}
	return api.Response{Success: r.Success, Message: r.Message, Details: details}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.StructField() {
	case "PrimaryPort":
		return "Port must be between 1 and 65535"
	case "UseSSL":
		return "useSSL must be one of none, negotiate, ssl, tls"
	case "SMTPAuth":
		return "smtpAuth must be one of none, login-plain, cram-md5"
	}
	return fe.Error()
}
