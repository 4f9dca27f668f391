package enrich

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/faithmap/faithmap/internal/model"
)

// Overrides maps facility ids to manually verified website URLs.
type Overrides map[string]string

// overridesFile is the on-disk layout:
//
//	websites:
//	  "22377855": http://www.sarang.org
type overridesFile struct {
	Websites map[string]string `yaml:"websites"`
}

// LoadOverrides reads an overrides YAML file. Blocklisted or empty URLs are
// rejected.
func LoadOverrides(path string) (Overrides, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, eris.Wrapf(err, "enrich: read overrides %s", path)
	}
	var file overridesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, eris.Wrapf(err, "enrich: parse overrides %s", path)
	}
	out := make(Overrides, len(file.Websites))
	for id, url := range file.Websites {
		id = strings.TrimSpace(id)
		url = strings.TrimSpace(url)
		if !model.IsValidWebsite(url) {
			return nil, eris.Errorf("enrich: override for %s has unusable website %q", id, url)
		}
		out[id] = url
	}
	return out, nil
}

// Apply sets the website of every listed facility and returns how many
// records changed. With onlyEmpty, facilities that already have a website
// are left alone.
func (o Overrides) Apply(list []model.Facility, onlyEmpty bool) int {
	n := 0
	for i := range list {
		url, ok := o[list[i].ID]
		if !ok {
			continue
		}
		if onlyEmpty && list[i].Website != "" {
			continue
		}
		if list[i].Website == url {
			continue
		}
		list[i].Website = url
		n++
	}
	return n
}
