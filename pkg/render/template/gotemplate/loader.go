package gotemplate

import (
	"io"
	"io/fs"
	"path"
	"strings"
)

// fsLoader resolves every template name from the root of files, so an
// include inside layouts/default.twig naming "home.twig" loads home.twig and
// not layouts/home.twig.
type fsLoader struct {
	files fs.FS
}

func (l *fsLoader) Abs(_, name string) string {
	cleaned := path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimPrefix(cleaned, "/")
}

func (l *fsLoader) Get(name string) (io.Reader, error) {
	return l.files.Open(name)
}
