package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

// TemplateStore serves sample workbooks from a single directory. Names that
// would escape the directory are treated as missing.
type TemplateStore struct {
	BaseDir string
}

func NewTemplateStore(baseDir string) *TemplateStore {
	if baseDir == "" {
		baseDir = "."
	}
	return &TemplateStore{BaseDir: baseDir}
}

func (s *TemplateStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.OpenInRoot(s.BaseDir, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || !fs.ValidPath(name) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("open template %s: %w", name, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat template %s: %w", name, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, name)
	}
	return file, nil
}
