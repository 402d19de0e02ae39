package engine

import "github.com/vango-dev/universal/internal/errors"

// Sentinel errors. Errors returned by Render carry the same codes and match
// these under errors.Is; they are fresh values, so callers may decorate
// them freely.
var (
	// ErrAppSelectorRequired means Options.AppSelector was empty.
	ErrAppSelectorRequired = errors.New("E100")

	// ErrInvalidAppSelector means Options.AppSelector was not a tag.
	ErrInvalidAppSelector = errors.New("E101")

	// ErrModuleRequired means Options.Module was nil.
	ErrModuleRequired = errors.New("E102")

	// ErrEngineMisconfigured means a required collaborator is missing.
	ErrEngineMisconfigured = errors.New("E103")

	// ErrSelectorNotFound means no element matched the app selector.
	ErrSelectorNotFound = errors.New("E111")

	// ErrStabilityTimeout means the application never became stable.
	ErrStabilityTimeout = errors.New("E112")

	// ErrHookFailed wraps a before-serialization hook failure. It is only
	// ever passed to the hook error handler.
	ErrHookFailed = errors.New("E113")

	// ErrNoDocument means the platform produced no document.
	ErrNoDocument = errors.New("E114")
)
