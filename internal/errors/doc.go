// Package errors provides structured, coded errors for the rendering engine
// and its tooling.
//
// # Error Categories
//
// Errors are organized into categories:
//   - config: invalid render options or configuration files (fail fast)
//   - compile: resource loading problems during module compilation
//   - render: problems with the rendered document (missing app root)
//   - timeout: the application never became stable
//   - hook: non-fatal before-serialization hook failures
//   - cli: command line usage problems
//
// Errors returned by external collaborators (compilers, platforms) are never
// converted into this package's type; they reach the caller unchanged.
//
// # Error Codes
//
// Each error has a unique code (e.g., "E111") that maps to a short message,
// a detailed explanation and an optional suggestion. Errors with the same
// code match under errors.Is, so a fresh instance can be compared with a
// sentinel:
//
//	var ErrSelectorNotFound = errors.New("E111")
//
//	err := errors.New("E111").WithContextf("selector %q", "app-root")
//	stderrors.Is(err, ErrSelectorNotFound) // true
//
// # Usage
//
//	err := errors.New("E100").WithSuggestion("pass an app selector")
//	fmt.Println(err.Format())
package errors
