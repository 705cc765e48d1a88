package vanilla_test

import (
	"io/fs"
	"testing"

	"github.com/goliatone/go-displaymeta/pkg/renderers/vanilla"
)

func fsReadFile(files fs.FS, name string) ([]byte, error) {
	return fs.ReadFile(files, name)
}

func TestAssetsFS_ServesStylesheet(t *testing.T) {
	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("stylesheet is empty")
	}
}
