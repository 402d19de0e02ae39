package engine

import (
	"strings"

	"github.com/vango-dev/universal/internal/errors"
	"github.com/vango-dev/universal/pkg/vdom"
)

// ParseAppSelector derives the bare tag name from an app selector written
// as a tag. "<app-root></app-root>" yields "app-root". The tag ends at the
// first whitespace or '>'.
func ParseAppSelector(appSelector string) (string, error) {
	if appSelector == "" {
		return "", errors.New("E100")
	}
	if appSelector[0] != '<' {
		return "", errors.New("E101").WithContextf("%q does not start with '<'", appSelector)
	}
	end := strings.IndexByte(appSelector, '>')
	if end < 0 {
		return "", errors.New("E101").WithContextf("%q has no closing '>'", appSelector)
	}

	tag := appSelector[1:end]
	if i := strings.IndexAny(tag, " \t\n\r\f"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.TrimSuffix(tag, "/")
	if tag == "" {
		return "", errors.New("E101").WithContextf("%q has an empty tag name", appSelector)
	}
	if _, err := vdom.CompileSelector(tag); err != nil || strings.ContainsAny(tag, "#.[*") {
		return "", errors.New("E101").WithContextf("%q is not a valid tag name", tag)
	}
	return strings.ToLower(tag), nil
}
