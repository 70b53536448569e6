package session

import (
	"testing"

	"github.com/coldestconcept/beatgenius/internal/config"
	"github.com/coldestconcept/beatgenius/internal/db"
	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

func signedInStore(t *testing.T) *Store {
	t.Helper()
	s, _ := testStore(t)
	if _, err := s.SignIn("Kay"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	return s
}

func TestSaveRecipe(t *testing.T) {
	s := signedInStore(t)

	saved, created, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}
	if !created {
		t.Error("expected created=true on first save")
	}
	if saved.ID == "" || saved.SavedAt == "" {
		t.Errorf("expected id and timestamp to be set, got %+v", saved)
	}
	if saved.BubbleColor != config.DefaultConfig().DefaultBubbleColor {
		t.Errorf("unexpected bubble color %q", saved.BubbleColor)
	}
}

func TestSaveRecipe_RequiresSignIn(t *testing.T) {
	s, _ := testStore(t)

	_, _, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestSaveRecipe_EmptyTitle(t *testing.T) {
	s := signedInStore(t)

	_, _, err := s.SaveRecipe(recipe.BeatRecipe{Style: "Dark Drill"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestSaveRecipe_DuplicateTitle(t *testing.T) {
	s := signedInStore(t)

	first, _, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	altered := testRecipe("Arctic Drip")
	altered.Style = "Dark Drill"
	second, created, err := s.SaveRecipe(altered)
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if created {
		t.Error("expected created=false for duplicate title")
	}
	if second.ID != first.ID {
		t.Errorf("expected existing record returned, got %s vs %s", second.ID, first.ID)
	}
	if len(s.Vault()) != 1 {
		t.Errorf("expected 1 vault entry, got %d", len(s.Vault()))
	}
}

func TestSaveRecipe_AutoPreset(t *testing.T) {
	s := signedInStore(t)

	saved, _, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}

	if saved.LinkedPresetID == nil {
		t.Fatal("expected auto-captured preset link")
	}
	presets := s.Presets()
	if len(presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(presets))
	}
	if presets[0].ID != *saved.LinkedPresetID {
		t.Error("linked preset id does not match captured preset")
	}
	if presets[0].Name != "Arctic Drip Look" {
		t.Errorf("unexpected preset name %q", presets[0].Name)
	}
	if presets[0].Appearance != s.Appearance() {
		t.Error("expected preset to snapshot the live appearance")
	}
}

func TestSaveRecipe_NoAutoPreset(t *testing.T) {
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	cfg.NoAutoPreset = true
	s, err := Load(database, cfg)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := s.SignIn("Kay"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	saved, _, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}
	if saved.LinkedPresetID != nil {
		t.Errorf("expected no preset link, got %v", *saved.LinkedPresetID)
	}
	if len(s.Presets()) != 0 {
		t.Errorf("expected no presets, got %d", len(s.Presets()))
	}
}

func TestRemoveRecipe(t *testing.T) {
	s := signedInStore(t)

	saved, _, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}

	s.RemoveRecipe(saved.ID)
	if len(s.Vault()) != 0 {
		t.Errorf("expected empty vault, got %d entries", len(s.Vault()))
	}

	// absent id is a no-op
	s.RemoveRecipe("nope")
}

func TestUpdateRecipeColor(t *testing.T) {
	s := signedInStore(t)

	saved, _, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}

	s.UpdateRecipeColor(saved.ID, "#f43f5e")
	if got := s.Vault()[0].BubbleColor; got != "#f43f5e" {
		t.Errorf("expected updated color, got %q", got)
	}
}

func TestUpdateRecipeFolder(t *testing.T) {
	s := signedInStore(t)

	saved, _, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}
	folder, err := s.AddFolder("Drill")
	if err != nil {
		t.Fatalf("AddFolder failed: %v", err)
	}

	if err := s.UpdateRecipeFolder(saved.ID, folder.ID); err != nil {
		t.Fatalf("UpdateRecipeFolder failed: %v", err)
	}
	got := s.Vault()[0]
	if got.FolderID == nil || *got.FolderID != folder.ID {
		t.Errorf("expected folder assignment, got %+v", got.FolderID)
	}

	// empty folder id clears the assignment
	if err := s.UpdateRecipeFolder(saved.ID, ""); err != nil {
		t.Fatalf("clearing folder failed: %v", err)
	}
	if s.Vault()[0].FolderID != nil {
		t.Error("expected folder assignment cleared")
	}

	if err := s.UpdateRecipeFolder(saved.ID, "missing"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND for missing folder, got %v", err)
	}
}

func TestUpdateRecipeLinkedPreset(t *testing.T) {
	s := signedInStore(t)

	saved, _, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}
	preset, err := s.SavePreset("Night Mode", false)
	if err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}

	if err := s.UpdateRecipeLinkedPreset(saved.ID, preset.ID); err != nil {
		t.Fatalf("UpdateRecipeLinkedPreset failed: %v", err)
	}
	got := s.Vault()[0]
	if got.LinkedPresetID == nil || *got.LinkedPresetID != preset.ID {
		t.Errorf("expected preset link, got %+v", got.LinkedPresetID)
	}

	if err := s.UpdateRecipeLinkedPreset(saved.ID, "missing"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND for missing preset, got %v", err)
	}
}

func TestApplyParameters(t *testing.T) {
	s := signedInStore(t)

	saved, _, err := s.SaveRecipe(testRecipe("Arctic Drip"))
	if err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}

	p := &recipe.Parameters{
		RecipeTitle:  "Arctic Drip",
		MixingAdvice: "Sidechain the pads to the 808.",
		Dives: []recipe.PluginDeepDive{
			{PluginName: "Serum", Settings: []recipe.ParameterSetting{{Parameter: "Unison", Value: "7", Explanation: "Wider lead"}}},
		},
	}
	s.ApplyParameters(saved.ID, p)

	got, err := s.FindRecipe(saved.ID)
	if err != nil {
		t.Fatalf("FindRecipe failed: %v", err)
	}
	if got.Parameters == nil || got.Parameters.MixingAdvice != p.MixingAdvice {
		t.Errorf("expected parameters applied, got %+v", got.Parameters)
	}

	// absent id is a no-op
	s.ApplyParameters("nope", p)
}

func TestFindRecipe_Missing(t *testing.T) {
	s := signedInStore(t)

	if _, err := s.FindRecipe("nope"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
