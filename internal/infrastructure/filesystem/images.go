package filesystem

import (
	"image"
	"os"
	"path/filepath"

	// Formatos aceptados por el feed; el registro habilita DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
)

var _ appfeed.ImageVerifier = (*ImageVerifier)(nil)

// ImageVerifier comprueba que una ruta pública apunta a un archivo que
// decodifica como imagen. Solo lee la cabecera, no la imagen completa.
type ImageVerifier struct {
	root string // raíz pública bajo la que viven las rutas (document root)
}

// NewImageVerifier construye el verificador sobre el document root.
func NewImageVerifier(root string) *ImageVerifier {
	return &ImageVerifier{root: root}
}

// IsImage devuelve true si el archivo existe y su cabecera decodifica como
// imagen en alguno de los formatos registrados.
func (v *ImageVerifier) IsImage(path string) bool {
	f, err := os.Open(filepath.Join(v.root, filepath.FromSlash(path)))
	if err != nil {
		return false
	}
	defer f.Close()

	_, _, err = image.DecodeConfig(f)
	return err == nil
}
