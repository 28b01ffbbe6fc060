package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/jhoicas/fixture-cleanup/internal/application/cleanup"
	"github.com/jhoicas/fixture-cleanup/internal/domain"
	"github.com/spf13/afero"
)

var _ cleanup.ImageRemover = (*UploadStore)(nil)

// UploadStore acceso al directorio público de uploads. Todas las rutas son relativas a su raíz.
type UploadStore struct {
	fs           afero.Fs
	publicPrefix string // ej. /uploads/
	dirPrefix    string // ej. public/uploads/
}

// NewLocalUploadStore monta el store sobre el disco, confinado a uploadsDir.
func NewLocalUploadStore(uploadsDir, publicPrefix string) *UploadStore {
	return NewUploadStore(afero.NewBasePathFs(afero.NewOsFs(), uploadsDir), uploadsDir, publicPrefix)
}

// NewUploadStore construye el store sobre un afero.Fs cuya raíz ya es el directorio de uploads.
// uploadsDir se usa solo para reconocer referencias guardadas como ruta en disco (public/uploads/...).
func NewUploadStore(fsys afero.Fs, uploadsDir, publicPrefix string) *UploadStore {
	return &UploadStore{
		fs:           fsys,
		publicPrefix: withSlashes(publicPrefix),
		dirPrefix:    strings.TrimPrefix(withSlashes(uploadsDir), "/"),
	}
}

func withSlashes(p string) string {
	p = path.Clean("/" + strings.TrimSpace(p))
	if p == "/" {
		return p
	}
	return p + "/"
}

// Resolve traduce image_url a una ruta relativa a la raíz de uploads.
// "/uploads/x.png" (prefijo público) se interpreta como URL; "public/uploads/x.png" es una
// ruta en disco y se toma literal. Rechaza URLs absolutas y rutas que escapen de la raíz.
func (s *UploadStore) Resolve(imageURL string) (string, bool) {
	ref := strings.TrimSpace(imageURL)
	if ref == "" {
		return "", false
	}

	var rel string
	switch {
	case strings.HasPrefix(ref, s.publicPrefix):
		u, err := url.Parse(ref)
		if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, s.publicPrefix) {
			return "", false
		}
		rel = strings.TrimPrefix(u.Path, s.publicPrefix)
	case s.dirPrefix != "" && strings.HasPrefix(strings.TrimPrefix(ref, "/"), s.dirPrefix):
		rel = strings.TrimPrefix(strings.TrimPrefix(ref, "/"), s.dirPrefix)
	default:
		return "", false
	}
	if rel == "" || strings.Contains(rel, `\`) {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", false
		}
	}
	clean := path.Clean(rel)
	if clean == "." || strings.HasPrefix(clean, "/") {
		return "", false
	}
	return clean, true
}

// Remove elimina el archivo relativo a la raíz. domain.ErrFileNotFound si no existe.
func (s *UploadStore) Remove(relPath string) error {
	info, err := s.fs.Stat(relPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrFileNotFound, relPath)
		}
		return fmt.Errorf("stat %q: %w", relPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%q es un directorio", relPath)
	}
	if err := s.fs.Remove(relPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrFileNotFound, relPath)
		}
		return fmt.Errorf("remove %q: %w", relPath, err)
	}
	return nil
}
