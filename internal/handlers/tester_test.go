package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/smtp-gateway-agent/api/v1"
	"github.com/kubev2v/smtp-gateway-agent/internal/handlers"
	"github.com/kubev2v/smtp-gateway-agent/internal/models"
	srvErrors "github.com/kubev2v/smtp-gateway-agent/pkg/errors"
)

var _ = Describe("Connection Test Handlers", func() {
	var (
		mockTester *MockConnectionTester
		router     *gin.Engine
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		mockTester = &MockConnectionTester{
			StatusResult: models.TestRun{Status: models.TestStatusIdle, Diagnostics: []models.DiagnosticLine{}},
		}
		handler := handlers.New(&MockGatewayService{}, mockTester, &MockAuthenticator{})
		router = gin.New()
		v1.RegisterHandlers(router, handler)
	})

	Describe("GetConnectionTest", func() {
		It("should return idle initially", func() {
			req := httptest.NewRequest(http.MethodGet, "/connection-test", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var response v1.TestRun
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Status).To(Equal(v1.TestRunStatusIdle))
			Expect(response.Diagnostics).To(BeEmpty())
		})

		// Given a run that reverted to idle after a failure
		// When we request the status
		// Then the diagnostics of that run are still returned
		It("should return diagnostics retained at idle", func() {
			// Arrange
			mockTester.StatusResult = models.TestRun{
				ID:     uuid.New(),
				Status: models.TestStatusIdle,
				Diagnostics: []models.DiagnosticLine{
					{Kind: models.DiagnosticError, Message: "Auth rejected"},
				},
			}
			req := httptest.NewRequest(http.MethodGet, "/connection-test", nil)
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusOK))
			var response v1.TestRun
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Status).To(Equal(v1.TestRunStatusIdle))
			Expect(response.Diagnostics).To(Equal([]v1.DiagnosticLine{
				{Kind: v1.DiagnosticLineKindError, Message: "Auth rejected"},
			}))
		})
	})

	Describe("StartConnectionTest", func() {
		It("should return 202 with the testing run", func() {
			mockTester.StartResult = models.NewTestRun()
			req := httptest.NewRequest(http.MethodPost, "/connection-test", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusAccepted))
			Expect(mockTester.StartCallCount).To(Equal(1))
			var response v1.TestRun
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Status).To(Equal(v1.TestRunStatusTesting))
			Expect(response.Id).To(HaveValue(Equal(mockTester.StartResult.ID)))
		})

		// Given a test already running
		// When we trigger again
		// Then it should return 409 Conflict
		It("should return 409 when a test is in progress", func() {
			// Arrange
			mockTester.StartError = srvErrors.NewTestInProgressError()
			req := httptest.NewRequest(http.MethodPost, "/connection-test", nil)
			w := httptest.NewRecorder()

			// Act
			router.ServeHTTP(w, req)

			// Assert
			Expect(w.Code).To(Equal(http.StatusConflict))
			var response map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response["error"]).To(ContainSubstring("already in progress"))
		})

		It("should return 500 for other errors", func() {
			mockTester.StartError = errors.New("db closed")
			req := httptest.NewRequest(http.MethodPost, "/connection-test", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("ListConnectionTestHistory", func() {
		It("should use the default limit", func() {
			mockTester.HistoryResult = []models.TestRun{{ID: uuid.New(), Status: models.TestStatusSuccess}}
			req := httptest.NewRequest(http.MethodGet, "/connection-test/history", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockTester.LastLimit).To(Equal(uint64(20)))
			var response v1.TestRunList
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Total).To(Equal(1))
			Expect(response.Runs[0].Status).To(Equal(v1.TestRunStatusSuccess))
		})

		It("should pass the limit through", func() {
			req := httptest.NewRequest(http.MethodGet, "/connection-test/history?limit=5", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(mockTester.LastLimit).To(Equal(uint64(5)))
		})

		DescribeTable("should reject an invalid limit",
			func(query string) {
				req := httptest.NewRequest(http.MethodGet, "/connection-test/history?"+query, nil)
				w := httptest.NewRecorder()

				router.ServeHTTP(w, req)

				Expect(w.Code).To(Equal(http.StatusBadRequest))
			},
			Entry("zero", "limit=0"),
			Entry("too large", "limit=101"),
			Entry("not a number", "limit=abc"),
		)

		It("should return 500 when the store fails", func() {
			mockTester.HistoryError = errors.New("db closed")
			req := httptest.NewRequest(http.MethodGet, "/connection-test/history", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("ExportConnectionTestHistory", func() {
		It("should return the workbook as an attachment", func() {
			mockTester.ExportData = []byte("PK-workbook")
			req := httptest.NewRequest(http.MethodGet, "/connection-test/history/export?limit=10", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring(".xlsx"))
			Expect(w.Body.String()).To(Equal("PK-workbook"))
			Expect(mockTester.LastLimit).To(Equal(uint64(10)))
		})

		It("should return 500 when the export fails", func() {
			mockTester.ExportError = errors.New("disk full")
			req := httptest.NewRequest(http.MethodGet, "/connection-test/history/export", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("GetConnectionTestRun", func() {
		It("should return the run", func() {
			id := uuid.New()
			mockTester.GetRunResult = &models.TestRun{ID: id, Status: models.TestStatusFailed}
			req := httptest.NewRequest(http.MethodGet, "/connection-test/history/"+id.String(), nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var response v1.TestRun
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Id).To(HaveValue(Equal(id)))
		})

		It("should return 404 for an unknown run", func() {
			mockTester.GetRunError = srvErrors.NewTestRunNotFoundError()
			req := httptest.NewRequest(http.MethodGet, "/connection-test/history/"+uuid.NewString(), nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a malformed id", func() {
			req := httptest.NewRequest(http.MethodGet, "/connection-test/history/not-a-uuid", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
