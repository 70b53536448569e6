package recipe

import "fmt"

// ValidateRecipes checks the shape of a decoded generation payload.
// The generation service is constrained by a response schema, but the
// decoded JSON is still checked here before it reaches the store; a
// mismatch is surfaced as a generation failure by the caller.
func ValidateRecipes(recipes []BeatRecipe) error {
	if len(recipes) == 0 {
		return fmt.Errorf("response contained no recipes")
	}
	for i, r := range recipes {
		if r.Title == "" {
			return fmt.Errorf("recipes[%d]: missing title", i)
		}
		if r.Style == "" {
			return fmt.Errorf("recipes[%d] %q: missing style", i, r.Title)
		}
		if len(r.Ingredients) == 0 {
			return fmt.Errorf("recipes[%d] %q: no ingredients", i, r.Title)
		}
		for j, ing := range r.Ingredients {
			if ing.Instrument == "" {
				return fmt.Errorf("recipes[%d].ingredients[%d]: missing instrument", i, j)
			}
			for k, step := range ing.Processing {
				if step.PluginName == "" {
					return fmt.Errorf("recipes[%d].ingredients[%d].processing[%d]: missing pluginName", i, j, k)
				}
			}
		}
	}
	return nil
}

// ValidateParameters checks the shape of a decoded enrichment payload.
func ValidateParameters(p *Parameters) error {
	if p == nil {
		return fmt.Errorf("nil parameters payload")
	}
	if len(p.Dives) == 0 {
		return fmt.Errorf("parameters payload contained no dives")
	}
	for i, d := range p.Dives {
		if d.PluginName == "" {
			return fmt.Errorf("dives[%d]: missing pluginName", i)
		}
		for j, s := range d.Settings {
			if s.Parameter == "" {
				return fmt.Errorf("dives[%d].settings[%d]: missing parameter", i, j)
			}
		}
	}
	return nil
}
