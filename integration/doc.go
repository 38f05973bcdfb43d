// Package integration contains the end-to-end smoke tests for retemplate.
// Tests in this package build the real binary and run it against a temporary
// project holding BMAD templates.
//
// Run with: go test ./integration/... -v -timeout 60s
package integration
