package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
)

// límite de tamaño por archivo subido
const maxUploadBytes = 10 << 20 // 10 MiB

// readFormFile lee el archivo del campo multipart indicado. Devuelve nil sin
// error cuando el formulario no trae el campo: "sin archivo" es un caso
// normal, no una falla.
func readFormFile(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fileHeader.Size > maxUploadBytes {
		return nil, fmt.Errorf("archivo %s supera el límite de %d bytes", field, maxUploadBytes)
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir archivo %s: %w", field, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("leer archivo %s: %w", field, err)
	}
	return data, nil
}
