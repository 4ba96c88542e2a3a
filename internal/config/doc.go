// Package config handles configuration loading for flow-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation of the required fields.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from FLOW_GATEWAY_CONFIG environment variable
//  2. ~/.config/flow-gateway/gateway.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	webhook:
//	  verify_secret: "${WEBHOOK_VERIFY_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"   # Webhook and introspection API
//
// Database:
//
//	database:
//	  path: "/var/lib/flow-gateway/gateway.db"
//
// Webhook verification:
//
//	webhook:
//	  verify_secret: "${WEBHOOK_VERIFY_SECRET}"  # Empty disables verification
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Load() validates that server.http_addr and database.path are set. The
// webhook secret is optional; running without one disables signature
// verification and is logged as a degraded-security mode at startup.
package config
