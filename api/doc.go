// Package api provides the request/response DTOs and OpenAPI annotations for
// the OCRFlow HTTP API.
//
// # API Overview
//
// OCRFlow provides a RESTful API for:
//   - Parsing receipts, invoices, financial documents and identity documents
//     into one standardized schema, with the provider's raw response attached
//   - Provider credential rotation backed by the credentials database
//   - Health monitoring and metrics
//
// # Authentication
//
// When auth.api_keys is configured, endpoints under /api/v1 require the
// X-API-Key header:
//
//	X-API-Key: your-api-key
//
// When auth.jwt_secret is configured, a bearer token is accepted instead:
//
//	Authorization: Bearer <jwt>
//
// # Base URL
//
// The default base URL for the API is:
//
//	http://localhost:8080
//
// # Generating Documentation
//
//	swag init -g cmd/ocrflow/main.go -o api --parseDependency --parseInternal
package api
