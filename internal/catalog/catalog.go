package catalog

import (
	"fmt"
	"strings"

	"filesolved/internal/core/domain"
)

// Catalog is the immutable, process-wide table of service definitions. It is
// built once at startup; updating the catalog means starting a new process
// generation. All accessors are pure reads.
type Catalog struct {
	services []domain.ServiceDefinition
	byID     map[string]*domain.ServiceDefinition
}

// New builds a catalog from the given definitions. Duplicate ids are rejected.
func New(services []domain.ServiceDefinition) (*Catalog, error) {
	c := &Catalog{
		services: make([]domain.ServiceDefinition, len(services)),
		byID:     make(map[string]*domain.ServiceDefinition, len(services)),
	}
	copy(c.services, services)
	for i := range c.services {
		svc := &c.services[i]
		if svc.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has empty id", i)
		}
		if _, exists := c.byID[svc.ID]; exists {
			return nil, fmt.Errorf("duplicate service id %q", svc.ID)
		}
		c.byID[svc.ID] = svc
	}
	return c, nil
}

// MustDefault builds the catalog from the embedded default data and panics on
// error. Intended for process startup only.
func MustDefault() *Catalog {
	c, err := New(Default())
	if err != nil {
		panic(err)
	}
	return c
}

// ByID looks up a service by exact id.
func (c *Catalog) ByID(id string) (*domain.ServiceDefinition, bool) {
	svc, ok := c.byID[id]
	return svc, ok
}

// Enabled returns all enabled services in catalog order.
func (c *Catalog) Enabled() []domain.ServiceDefinition {
	out := make([]domain.ServiceDefinition, 0, len(c.services))
	for _, svc := range c.services {
		if svc.Enabled {
			out = append(out, svc)
		}
	}
	return out
}

// ByType returns all enabled services of the given type.
func (c *Catalog) ByType(t domain.ServiceType) []domain.ServiceDefinition {
	var out []domain.ServiceDefinition
	for _, svc := range c.services {
		if svc.Enabled && svc.Type == t {
			out = append(out, svc)
		}
	}
	return out
}

// ByTag returns all enabled services carrying the given tag.
func (c *Catalog) ByTag(tag string) []domain.ServiceDefinition {
	var out []domain.ServiceDefinition
	for _, svc := range c.services {
		if svc.Enabled && svc.HasTag(tag) {
			out = append(out, svc)
		}
	}
	return out
}

// Search matches enabled services by name, description or tag substring,
// case-insensitively.
func (c *Catalog) Search(query string) []domain.ServiceDefinition {
	q := strings.ToLower(query)
	var out []domain.ServiceDefinition
	for _, svc := range c.services {
		if !svc.Enabled {
			continue
		}
		if strings.Contains(strings.ToLower(svc.Name), q) ||
			strings.Contains(strings.ToLower(svc.Description), q) ||
			tagMatch(svc.Tags, q) {
			out = append(out, svc)
		}
	}
	return out
}

func tagMatch(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// ResolvePrice computes the order amount in decimal currency units. Flat-unit
// services and bundles cost the base price regardless of quantity; all other
// units scale linearly. Quantity below 1 clamps to 1.
func ResolvePrice(svc *domain.ServiceDefinition, quantity int) float64 {
	if quantity < 1 {
		quantity = 1
	}
	base := float64(svc.BasePriceCents) / 100
	if svc.IsBundle() || svc.Unit == domain.UnitFlat {
		return base
	}
	return base * float64(quantity)
}

// ValidateExtraFields checks the service-specific required metadata. It
// returns nil when the service declares no required fields; a single
// aggregate error when required fields exist but no map was provided; and
// otherwise one error per required field that is absent or blank after
// trimming.
func ValidateExtraFields(svc *domain.ServiceDefinition, fields map[string]string) []string {
	required := svc.RequiresExtraFields
	if len(required) == 0 {
		return nil
	}
	if fields == nil {
		return []string{fmt.Sprintf("Missing required fields: %s", strings.Join(required, ", "))}
	}
	var errs []string
	for _, name := range required {
		if strings.TrimSpace(fields[name]) == "" {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", name))
		}
	}
	return errs
}
