package records

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed herd.yaml
var herdYAML []byte

type seedFile struct {
	Animals []AnimalRecord `yaml:"animals"`
}

// Seed devuelve el rebaño de demo embebido en el binario.
func Seed() ([]AnimalRecord, error) {
	return ParseSeed(herdYAML)
}

// ParseSeed decodifica y valida un catálogo YAML.
func ParseSeed(data []byte) ([]AnimalRecord, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse herd seed: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Animals))
	var errs []error
	for i, a := range f.Animals {
		id := strings.TrimSpace(a.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("animal #%d: id is required", i))
			continue
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("animal %s: duplicated id", id))
		}
		seen[id] = struct{}{}

		if a.Score < 0 || a.Score > 100 {
			errs = append(errs, fmt.Errorf("animal %s: score %d out of range", id, a.Score))
		}
		if !a.Status.Valid() {
			errs = append(errs, fmt.Errorf("animal %s: unknown status %q", id, a.Status))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return f.Animals, nil
}
