// Package gateway serves the inbound webhook and the introspection API.
//
// # Endpoints
//
//   - POST /webhook - inbound chat-provider events
//   - GET /contexts - list all persisted user contexts
//   - POST /contexts/reset - delete all contexts
//   - GET /health, GET /health/ready - liveness and readiness
//
// # Webhook Processing
//
// Each webhook request passes through a fixed pipeline: the HMAC-SHA256
// signature is checked over the raw body before any parsing; the envelope is
// structurally validated, with field-level errors returned as values rather
// than raised; the first message of the first change of the first entry is
// extracted (additional messages in the same payload are ignored); the flow
// engine routes the message; the engine's reply is wrapped into the response.
//
// # Error Policy
//
// Authentication and validation failures are rejected with actionable detail
// and never reach the flow engine. Engine and store failures are logged in
// full and downgraded to a generic internal error for the caller. The
// gateway performs no retries; once a transition has been issued to the
// store it is not undone, even if the client disconnects before the reply
// is written.
//
// # Degraded Mode
//
// Without a configured verify secret the signature check is skipped. This is
// logged prominently at startup; it is intended for local development only.
package gateway
