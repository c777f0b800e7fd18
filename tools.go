//go:build tools

package tools

// Command-line tools used during development. They are not compiled into
// the binary:
//
//   - github.com/matryer/moq regenerates the *_mock_test.go and mocks_test.go files
//   - goose (go tool goose, pinned in go.mod) creates new files under migrations/
