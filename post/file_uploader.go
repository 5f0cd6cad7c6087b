package post

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var UploadDir = "uploads"

// SaveFile stores an uploaded form file under UploadDir with a
// collision-free name. A missing file is not an error; the post simply
// has no image.
func SaveFile(r *http.Request, fieldName string) (string, error) {
	file, header, err := r.FormFile(fieldName)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if _, err := os.Stat(UploadDir); os.IsNotExist(err) {
		os.MkdirAll(UploadDir, os.ModePerm)
	}

	fileName := uuid.New().String() + filepath.Ext(header.Filename)
	filePath := filepath.Join(UploadDir, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return filePath, nil
}
