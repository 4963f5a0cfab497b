// Package fixture serves a static event catalog in place of a real data source.
package fixture

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"eventfinder/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Events []domain.EventPrototype `yaml:"events"`
}

// DefaultCatalog returns the built-in prototype events.
func DefaultCatalog() ([]domain.EventPrototype, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalog))
}

// LoadCatalogFile reads a catalog from a YAML file on disk.
func LoadCatalogFile(path string) ([]domain.EventPrototype, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog decodes and validates a YAML catalog.
func LoadCatalog(r io.Reader) ([]domain.EventPrototype, error) {
	var c catalogFile
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse catalog: empty document")
		}
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Events))
	for i, p := range c.Events {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: id is required", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		cat, err := domain.ParseCategory(string(p.Category))
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", p.ID, err)
		}
		c.Events[i].Category = cat
	}
	return c.Events, nil
}

type eventRepository struct {
	prototypes []domain.EventPrototype
}

// NewEventRepository returns a stateless repository that resolves the given
// prototypes against every requested origin.
func NewEventRepository(prototypes []domain.EventPrototype) domain.EventRepository {
	p := make([]domain.EventPrototype, len(prototypes))
	copy(p, prototypes)
	return &eventRepository{prototypes: p}
}

func (r *eventRepository) ListNear(ctx context.Context, origin domain.Coordinate) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(r.prototypes))
	for _, p := range r.prototypes {
		out = append(out, p.Resolve(origin))
	}
	return out, nil
}
