// Package handlers implements the HTTP API layer for the smtp-gateway-agent.
//
// Handlers delegate to the services layer and only deal with request parsing,
// response formatting and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  GatewayService │ ConnectionTester │ Authenticator              │
//	└─────────────────────────────────────────────────────────────────┘
//
// The Handler implements v1.ServerInterface and is mounted with:
//
//	v1.RegisterHandlers(router, handler)
//
// # API Endpoints
//
// Gateway Endpoints (gateway.go):
//
//	┌────────┬──────────────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint                 │ Description                          │
//	├────────┼──────────────────────────┼──────────────────────────────────────┤
//	│ GET    │ /gateway                 │ Current draft (password omitted)     │
//	│ PUT    │ /gateway/fields/{name}   │ Replace one field, no validation     │
//	│ POST   │ /gateway/save            │ Write the draft to the log           │
//	└────────┴──────────────────────────┴──────────────────────────────────────┘
//
// Connection Test Endpoints (tester.go):
//
//	┌────────┬─────────────────────────────────┬───────────────────────────────┐
//	│ Method │ Endpoint                        │ Description                   │
//	├────────┼─────────────────────────────────┼───────────────────────────────┤
//	│ GET    │ /connection-test                │ Current run                   │
//	│ POST   │ /connection-test                │ Trigger a test                │
//	│ GET    │ /connection-test/history        │ Completed runs, newest first  │
//	│ GET    │ /connection-test/history/export │ Completed runs as .xlsx       │
//	│ GET    │ /connection-test/history/{id}   │ One completed run             │
//	└────────┴─────────────────────────────────┴───────────────────────────────┘
//
// Login Endpoint (auth.go):
//
//	┌────────┬──────────┬─────────────────────────────────────────────┐
//	│ Method │ Endpoint │ Description                                 │
//	├────────┼──────────┼─────────────────────────────────────────────┤
//	│ POST   │ /login   │ Check the login gate credentials            │
//	└────────┴──────────┴─────────────────────────────────────────────┘
//
// # Connection Test Handler
//
// GET /connection-test - Returns the current run:
//
//	{
//	    "id": "6f1c...",
//	    "status": "failed",   // idle|testing|success|failed
//	    "diagnostics": [
//	        {"kind": "info", "message": "Testing connection to smtp.example.com:587"},
//	        {"kind": "error", "message": "✗ Authentication failed: Invalid username or password"}
//	    ],
//	    "startedAt": "2025-03-01T10:00:00Z",
//	    "completedAt": "2025-03-01T10:00:02Z"
//	}
//
// Diagnostics of a finished run stay visible after the status returns to
// idle; they are cleared by the next trigger.
//
// POST /connection-test - Returns 202 Accepted with the testing run.
//
// Errors:
//   - 409 Conflict: a test is already waiting on the validation service
//
// GET /connection-test/history?limit=N - limit defaults to 20, range 1..100.
//
// # Error Handling
//
// Handlers use consistent error response format:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ Validation error            │ 400    │ Invalid body or params       │
//	│ InvalidCredentialsError     │ 401    │ Login gate mismatch          │
//	│ ResourceNotFoundError       │ 404    │ Unknown test run             │
//	│ TestInProgressError         │ 409    │ Test already running         │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
//
// # Model Conversion
//
// Conversions live in api/v1/extension.go:
//
//   - v1.NewGatewayConfig(models.GatewayConfig) → v1.GatewayConfig
//   - v1.NewTestRun(models.TestRun) → v1.TestRun
//   - v1.NewTestRunList([]models.TestRun) → v1.TestRunList
package handlers
