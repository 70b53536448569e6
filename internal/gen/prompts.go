package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// pluginListing renders a rack as one "Vendor - Name (Type)" line per
// plugin, the form the prompts reference.
func pluginListing(plugins []plugin.Record) string {
	lines := make([]string, 0, len(plugins))
	for _, p := range plugins {
		lines = append(lines, fmt.Sprintf("%s - %s (%s)", p.Vendor, p.Name, p.Type))
	}
	return strings.Join(lines, "\n")
}

func recommendationsPrompt(plugins []plugin.Record, objective string) string {
	listing := pluginListing(plugins)
	if objective = strings.TrimSpace(objective); objective != "" {
		return `Analyze my VST plugin list and suggest 3 high-level "Beat Recipes" for this objective: ` + objective + `.
Only use plugins from this list:
` + listing
	}
	return fmt.Sprintf(`Analyze my VST plugin list and suggest 3 high-level "Beat Recipes" for the craziest rap beat.
Only use plugins from this list:
%s

Focus on modern sub-genres: Melodic Trap, Dark Drill, High-Energy Rage.`, listing)
}

func parametersPrompt(r recipe.BeatRecipe) string {
	ingredients, _ := json.Marshal(r.Ingredients)
	return fmt.Sprintf(`For the following Beat Recipe, provide in-depth plugin parameters and beginner-friendly explanations for EVERY plugin mentioned.

Recipe: %s (%s)
Description: %s
Ingredients: %s
Mastering: %s

Be specific. For a Compressor, mention Threshold, Ratio, Attack, Release. For EQ, mention Frequencies.
Explain the settings so a beginner understands WHY they are being adjusted.`,
		r.Title, r.Style, r.Description, ingredients, strings.Join(r.Mastering, ", "))
}

func comparePrompt(sender, mine []plugin.Record) string {
	return fmt.Sprintf(`Two producers are comparing their VST plugin racks for a collab session.
Categorize BOTH racks into functional groups (Synths, Drums, EQ, Compression, Saturation, FX, Utility).
Mark a plugin as shared when the other rack contains a plugin with a matching name.
Finish with a one-paragraph summary of what the receiving producer is missing.

Sender's rack:
%s

My rack:
%s`, pluginListing(sender), pluginListing(mine))
}
