package catalogfile

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

//go:embed demo_catalog.yaml
var demoCatalog []byte

// FileSource loads a catalog from a YAML file on disk
type FileSource struct {
	path string
}

// NewFileSource creates a catalog source reading path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// LoadCatalog reads and parses the catalog file
func (s *FileSource) LoadCatalog(ctx context.Context) (*production.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return catalog, nil
}

// SaveCatalog writes the catalog as YAML, replacing the file
func (s *FileSource) SaveCatalog(ctx context.Context, catalog *production.Catalog) error {
	data, err := EncodeCatalog(catalog)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// DemoSource serves the bundled demo catalog (bread and chocolate chains)
type DemoSource struct{}

// NewDemoSource creates the demo catalog source
func NewDemoSource() *DemoSource {
	return &DemoSource{}
}

// LoadCatalog parses the embedded demo catalog
func (DemoSource) LoadCatalog(ctx context.Context) (*production.Catalog, error) {
	catalog, err := ParseCatalog(demoCatalog)
	if err != nil {
		return nil, fmt.Errorf("demo catalog: %w", err)
	}
	return catalog, nil
}
