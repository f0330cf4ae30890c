package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/portfolio/backend/internal/model"
)

//go:embed projects.yaml
var embeddedManifest []byte

// manifest is the on-disk shape of a project catalog.
type manifest struct {
	Projects []model.Project `yaml:"projects"`
}

// Load builds a Catalog from the manifest compiled into the binary.
func Load() (c *Catalog, err error) {
	c, err = decode(bytes.NewReader(embeddedManifest), "embedded manifest")
	return c, err
}

// LoadFile builds a Catalog from a manifest file with the same schema as the
// compiled one.
func LoadFile(path string) (c *Catalog, err error) {
	var f *os.File
	f, err = os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open catalog manifest: %s", path)
		return c, err
	}
	defer f.Close()

	c, err = decode(f, path)
	return c, err
}

func decode(r io.Reader, source string) (c *Catalog, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m manifest
	err = dec.Decode(&m)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse catalog manifest: %s", source)
		return c, err
	}

	c, err = New(m.Projects)
	if err != nil {
		err = errors.Wrapf(err, "catalog validation failed: %s", source)
		return c, err
	}
	return c, err
}
