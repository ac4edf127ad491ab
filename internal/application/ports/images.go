package ports

import (
	"context"
	"io"
)

// ImageStore almacenamiento de objetos para las imágenes de ítems.
// Put devuelve la ruta o URL pública que se guarda en Item.ImagePath.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
