package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ImageStore хранит картинки путёвок. Save кладёт содержимое под
// vacation_images/<имя файла> и возвращает сохранённое имя; повторная
// загрузка с тем же именем перезаписывает старую (last write wins).
type ImageStore interface {
	Save(filename string, content io.Reader) (string, error)
}

const imagePrefix = "vacation_images"

type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	dir := filepath.Join(root, imagePrefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Save(filename string, content io.Reader) (string, error) {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid image filename %q", filename)
	}

	path := filepath.Join(s.root, imagePrefix, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return name, nil
}
