package loader

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/vango-dev/universal/internal/errors"
)

// FileLoader reads resources from a directory. Resource URLs are resolved
// relative to the root, mapped through an optional Manifest, and never
// allowed to escape the root.
type FileLoader struct {
	root     string
	fsys     fs.FS
	manifest *Manifest
	logger   *slog.Logger
}

// Option configures a FileLoader.
type Option func(*FileLoader)

// WithManifest maps resource URLs through m before reading.
func WithManifest(m *Manifest) Option {
	return func(l *FileLoader) {
		l.manifest = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *FileLoader) {
		l.logger = logger
	}
}

// New creates a loader rooted at dir.
func New(dir string, opts ...Option) *FileLoader {
	return NewFS(os.DirFS(dir), append([]Option{withRoot(dir)}, opts...)...)
}

// NewFS creates a loader reading from fsys.
func NewFS(fsys fs.FS, opts ...Option) *FileLoader {
	l := &FileLoader{fsys: fsys}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default().With("component", "loader")
	}
	return l
}

func withRoot(dir string) Option {
	return func(l *FileLoader) {
		l.root = dir
	}
}

// Root returns the directory the loader reads from, or "" for an fs.FS
// loader.
func (l *FileLoader) Root() string {
	return l.root
}

// Manifest returns the loader's manifest, if any.
func (l *FileLoader) Manifest() *Manifest {
	return l.manifest
}

// Get returns the content of the resource at url.
func (l *FileLoader) Get(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, ok := relPath(url)
	if !ok {
		return "", errors.New("E131").WithContextf("%q", url)
	}
	if resolved, ok := relPath(l.manifest.Resolve(rel)); ok {
		rel = resolved
	}

	data, err := fs.ReadFile(l.fsys, rel)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.New("E130").WithContextf("%q", url).Wrap(err)
		}
		return "", err
	}

	l.logger.Debug("resource loaded", "url", url, "path", rel, "bytes", len(data))
	return string(data), nil
}
