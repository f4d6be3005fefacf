package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrNotAnImage = errors.New("only images are allowed")

// EnsureDir creates the upload directory if it does not exist
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SavePhoto stores an uploaded image under dir and returns its public URL
// path. Filenames are disambiguated with a timestamp prefix and a random
// suffix so concurrent uploads of the same file cannot collide.
func SavePhoto(c *fiber.Ctx, file *multipart.FileHeader, dir string) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)

	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}
