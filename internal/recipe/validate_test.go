package recipe

import (
	"strings"
	"testing"
)

func validRecipe() BeatRecipe {
	return BeatRecipe{
		Title:       "Arctic Drip",
		Style:       "Melodic Trap",
		Description: "Icy bells over booming 808s.",
		Ingredients: []Ingredient{
			{
				Instrument: "808 Bass",
				Processing: []SignalChainStep{
					{PluginName: "Pro-Q 3", Purpose: "Cut mud at 300Hz"},
				},
			},
		},
		Mastering: []string{"Limiter at -1dB ceiling"},
	}
}

func TestValidateRecipes_Valid(t *testing.T) {
	if err := ValidateRecipes([]BeatRecipe{validRecipe()}); err != nil {
		t.Errorf("ValidateRecipes failed: %v", err)
	}
}

func TestValidateRecipes_Empty(t *testing.T) {
	if err := ValidateRecipes(nil); err == nil {
		t.Error("ValidateRecipes(nil) = nil, want error")
	}
}

func TestValidateRecipes_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BeatRecipe)
		wantSub string
	}{
		{"missing title", func(r *BeatRecipe) { r.Title = "" }, "missing title"},
		{"missing style", func(r *BeatRecipe) { r.Style = "" }, "missing style"},
		{"no ingredients", func(r *BeatRecipe) { r.Ingredients = nil }, "no ingredients"},
		{"missing instrument", func(r *BeatRecipe) { r.Ingredients[0].Instrument = "" }, "missing instrument"},
		{"missing pluginName", func(r *BeatRecipe) { r.Ingredients[0].Processing[0].PluginName = "" }, "missing pluginName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(&r)
			err := ValidateRecipes([]BeatRecipe{r})
			if err == nil {
				t.Fatal("ValidateRecipes = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidateParameters(t *testing.T) {
	valid := &Parameters{
		RecipeTitle: "Arctic Drip",
		Dives: []PluginDeepDive{
			{
				PluginName: "Pro-Q 3",
				Settings: []ParameterSetting{
					{Parameter: "Frequency", Value: "300Hz", Explanation: "removes mud"},
				},
				ProTip: "Sweep to find the mud.",
			},
		},
		MixingAdvice: "Leave headroom.",
	}
	if err := ValidateParameters(valid); err != nil {
		t.Errorf("ValidateParameters failed: %v", err)
	}

	if err := ValidateParameters(nil); err == nil {
		t.Error("ValidateParameters(nil) = nil, want error")
	}

	noDives := &Parameters{RecipeTitle: "x"}
	if err := ValidateParameters(noDives); err == nil {
		t.Error("ValidateParameters(no dives) = nil, want error")
	}
}
