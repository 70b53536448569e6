// Package gen is the boundary to the external recipe collaborator. It
// builds prompts from session state, calls the Gemini API with strict
// response schemas, and validates every payload before it crosses into
// the session layer. Nothing outside this package talks to the network.
package gen

import (
	"context"
	"strings"

	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// Client generates recipes, parameter deep-dives, and rack comparisons.
// Implementations must return validated payloads only.
type Client interface {
	// Recommendations suggests beat recipes built exclusively from the
	// given plugin rack. The objective steers the suggestions: empty for
	// the default ask, a vibe keyword, or a song-title query.
	Recommendations(ctx context.Context, plugins []plugin.Record, objective string) ([]recipe.BeatRecipe, error)

	// Parameters fetches per-plugin settings and mixing advice for one
	// recipe.
	Parameters(ctx context.Context, r recipe.BeatRecipe) (*recipe.Parameters, error)

	// CompareLibraries categorizes two plugin racks side by side for a
	// collaboration session.
	CompareLibraries(ctx context.Context, sender, mine []plugin.Record) (*RackComparison, error)
}

// ComparedPlugin is one plugin in a categorized rack comparison. Shared
// is true when the receiving rack has a matching plugin.
type ComparedPlugin struct {
	Name   string `json:"name"`
	Vendor string `json:"vendor"`
	Shared bool   `json:"shared"`
}

// ComparisonCategory groups compared plugins under a functional label
// such as Synths, EQ, or Saturation.
type ComparisonCategory struct {
	Category string           `json:"category"`
	Sender   []ComparedPlugin `json:"sender"`
	Mine     []ComparedPlugin `json:"mine"`
}

// RackComparison is the categorized view of two plugin racks.
type RackComparison struct {
	Categories []ComparisonCategory `json:"categories"`
	Summary    string               `json:"summary"`
}

// HasPlugin reports whether the rack contains a plugin whose name
// includes the given name, case-insensitively. Used to mark shared
// plugins without a network call.
func HasPlugin(rack []plugin.Record, name string) bool {
	for _, p := range rack {
		if containsFold(p.Name, name) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
