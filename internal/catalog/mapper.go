package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/logger"
)

// dateLayouts accepted for the dateAdded field, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Mapper converts dataset ToolSpecs to domain.Tool entities.
type Mapper struct {
	logger logger.Logger
}

// NewMapper creates a new mapper instance.
func NewMapper(log logger.Logger) *Mapper {
	return &Mapper{logger: log}
}

// MapTools converts a parsed ToolsFile to []*domain.Tool. Entries with a
// duplicate ID, an out-of-range popularity, or an unparseable date are
// rejected; the whole load fails rather than serving a partial catalog.
func (m *Mapper) MapTools(file ToolsFile) ([]*domain.Tool, error) {
	seen := make(map[int]bool, len(file.Tools))
	tools := make([]*domain.Tool, 0, len(file.Tools))

	for _, spec := range file.Tools {
		if spec.Name == "" || spec.Category == "" {
			return nil, fmt.Errorf("tool %d: name and category are required", spec.ID)
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("duplicate tool id %d", spec.ID)
		}
		seen[spec.ID] = true

		if spec.Popularity < 0 || spec.Popularity > 100 {
			return nil, fmt.Errorf("tool %d: popularity %d out of range [0,100]", spec.ID, spec.Popularity)
		}

		added, err := parseDate(spec.DateAdded)
		if err != nil {
			return nil, fmt.Errorf("tool %d: %w", spec.ID, err)
		}

		// Labels matching both Free and Paid vocabularies land in the
		// Freemium tier only. Worth a warning so curators notice.
		m.warnAmbiguousPricing(spec)

		features := make([]domain.Feature, 0, len(spec.Features))
		for _, f := range spec.Features {
			features = append(features, domain.Feature{Name: f.Name, Description: f.Description})
		}

		tools = append(tools, &domain.Tool{
			ID:          spec.ID,
			Name:        spec.Name,
			Category:    spec.Category,
			Description: spec.Description,
			Image:       spec.Image,
			Features:    features,
			Pricing:     spec.Pricing,
			Link:        spec.Link,
			DateAdded:   added,
			Popularity:  spec.Popularity,
		})
	}

	return tools, nil
}

func (m *Mapper) warnAmbiguousPricing(spec ToolSpec) {
	if m.logger == nil {
		return
	}
	l := strings.ToLower(spec.Pricing)
	if strings.Contains(l, "free") && strings.Contains(l, "paid") {
		m.logger.Warn("ambiguous pricing label, tool will match Freemium only",
			logger.Int("tool_id", spec.ID),
			logger.String("pricing", spec.Pricing))
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("dateAdded is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dateAdded %q", s)
}
