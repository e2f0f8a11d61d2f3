// Package explorer implements the zone browsing engine: conjunctive
// filtering, case-insensitive search, and reveal-more pagination over an
// in-memory zone list.
package explorer

import (
	"strings"

	"github.com/ashique01/dhaka2070/internal/client"
)

// DefaultPageSize is how many zones one reveal step exposes.
const DefaultPageSize = 6

// FilterState holds the active filter fields. Zero values mean "no filter".
type FilterState struct {
	Search           string  // matches name, description, or any notableTech entry
	MinAILevel       float64 // inclusive threshold on aiIntegrationLevel
	MinSecurityLevel float64 // inclusive threshold on cyberSecurityLevel
	EnergySource     string  // substring of energySource
	Tech             string  // substring of any notableTech entry
}

// Engine recomputes the visible window over a zone list. All methods are
// synchronous and allocation-light, safe to call on every input event.
type Engine struct {
	zones     []client.Zone
	filters   FilterState
	pageSize  int
	pageCount int
}

// NewEngine creates an engine over the given zone list with the default page size.
func NewEngine(zones []client.Zone) *Engine {
	return NewEngineWithPageSize(zones, DefaultPageSize)
}

// NewEngineWithPageSize creates an engine with a custom page size.
func NewEngineWithPageSize(zones []client.Zone, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		zones:     zones,
		pageSize:  pageSize,
		pageCount: 1,
	}
}

// SetZones replaces the underlying zone list and resets the reveal window.
func (e *Engine) SetZones(zones []client.Zone) {
	e.zones = zones
	e.pageCount = 1
}

// SetSearch updates the search text. Any filter change resets the window.
func (e *Engine) SetSearch(text string) {
	e.filters.Search = text
	e.pageCount = 1
}

// SetMinAILevel updates the AI-integration threshold.
func (e *Engine) SetMinAILevel(level float64) {
	e.filters.MinAILevel = level
	e.pageCount = 1
}

// SetMinSecurityLevel updates the cyber-security threshold.
func (e *Engine) SetMinSecurityLevel(level float64) {
	e.filters.MinSecurityLevel = level
	e.pageCount = 1
}

// SetEnergySource updates the energy-source filter text.
func (e *Engine) SetEnergySource(text string) {
	e.filters.EnergySource = text
	e.pageCount = 1
}

// SetTech updates the technology-tag filter text.
func (e *Engine) SetTech(text string) {
	e.filters.Tech = text
	e.pageCount = 1
}

// Filters returns the current filter state.
func (e *Engine) Filters() FilterState {
	return e.filters
}

// PageCount returns the current number of revealed pages.
func (e *Engine) PageCount() int {
	return e.pageCount
}

// Filtered returns every zone matching all active filters, in list order.
func (e *Engine) Filtered() []client.Zone {
	out := make([]client.Zone, 0, len(e.zones))
	for _, z := range e.zones {
		if e.matches(&z) {
			out = append(out, z)
		}
	}
	return out
}

// Visible returns the filtered zones truncated to the revealed window.
func (e *Engine) Visible() []client.Zone {
	filtered := e.Filtered()
	limit := e.pageCount * e.pageSize
	if limit > len(filtered) {
		limit = len(filtered)
	}
	return filtered[:limit]
}

// HasMore reports whether more zones remain beyond the revealed window.
func (e *Engine) HasMore() bool {
	return e.pageCount*e.pageSize < len(e.Filtered())
}

// RevealMore extends the window by one page. Calling it when HasMore is
// false is a no-op, so a queued extra trigger is harmless.
func (e *Engine) RevealMore() {
	if e.HasMore() {
		e.pageCount++
	}
}

// matches applies the conjunctive filter predicate to one zone.
func (e *Engine) matches(z *client.Zone) bool {
	if s := strings.TrimSpace(e.filters.Search); s != "" {
		if !containsFold(z.Name, s) && !containsFold(z.Description, s) && !anyContainsFold(z.NotableTech, s) {
			return false
		}
	}

	if z.AIIntegrationLevel < e.filters.MinAILevel {
		return false
	}
	if z.CyberSecurityLevel < e.filters.MinSecurityLevel {
		return false
	}

	if s := strings.TrimSpace(e.filters.EnergySource); s != "" {
		if !containsFold(z.EnergySource, s) {
			return false
		}
	}

	if s := strings.TrimSpace(e.filters.Tech); s != "" {
		if !anyContainsFold(z.NotableTech, s) {
			return false
		}
	}

	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsFold(haystacks []string, needle string) bool {
	for _, h := range haystacks {
		if containsFold(h, needle) {
			return true
		}
	}
	return false
}
