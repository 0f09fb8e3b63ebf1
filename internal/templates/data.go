package templates

import (
	"errors"
	"maps"
	"slices"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
)

// PrimaryKey is the key the page entity is published under in page data.
const PrimaryKey = "Entity"

// ErrPrimaryKeyConflict is returned when the common data already defines the
// primary key.
var ErrPrimaryKeyConflict = errors.New("common data already defines the primary key")

// TemplateData overlays one primary entry on a shared common data map. The
// common map is referenced, not copied, so values added to it later are
// visible; the primary entry always wins and is always listed first.
type TemplateData struct {
	common     map[string]any
	primaryKey string
	primary    any
}

// NewTemplateData returns page data exposing primary under key on top of
// common. It fails if common already has key.
func NewTemplateData(common map[string]any, key string, primary any) (*TemplateData, error) {
	if key == "" {
		return nil, derrors.InvalidArgument("key", "must not be empty")
	}
	if _, exists := common[key]; exists {
		return nil, derrors.Wrap(ErrPrimaryKeyConflict, derrors.CategoryContract, derrors.SeverityFatal,
			"common data defines primary key "+key).WithContext("key", key)
	}
	return &TemplateData{common: common, primaryKey: key, primary: primary}, nil
}

// PrimaryKey returns the key the primary entity is stored under.
func (d *TemplateData) PrimaryKey() string { return d.primaryKey }

// Primary returns the primary entity.
func (d *TemplateData) Primary() any { return d.primary }

// Get looks key up, primary entry first.
func (d *TemplateData) Get(key string) (any, bool) {
	if key == d.primaryKey {
		return d.primary, true
	}
	v, ok := d.common[key]
	return v, ok
}

// Keys returns the primary key followed by the common keys in sorted order.
func (d *TemplateData) Keys() []string {
	keys := make([]string, 0, d.Len())
	keys = append(keys, d.primaryKey)
	for _, k := range slices.Sorted(maps.Keys(d.common)) {
		if k != d.primaryKey {
			keys = append(keys, k)
		}
	}
	return keys
}

func (d *TemplateData) Len() int {
	n := len(d.common) + 1
	if _, shadowed := d.common[d.primaryKey]; shadowed {
		n--
	}
	return n
}

// Map returns a snapshot of the data as a plain map, which is what templates
// are executed against.
func (d *TemplateData) Map() map[string]any {
	out := make(map[string]any, d.Len())
	maps.Copy(out, d.common)
	out[d.primaryKey] = d.primary
	return out
}
