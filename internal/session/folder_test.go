package session

import (
	"testing"

	"github.com/coldestconcept/beatgenius/internal/errors"
)

func TestAddFolder(t *testing.T) {
	s, _ := testStore(t)

	folder, err := s.AddFolder("  Drill  ")
	if err != nil {
		t.Fatalf("AddFolder failed: %v", err)
	}
	if folder.Name != "Drill" {
		t.Errorf("expected trimmed name, got %q", folder.Name)
	}
	if folder.ID == "" {
		t.Error("expected folder id to be set")
	}
}

func TestAddFolder_EmptyName(t *testing.T) {
	s, _ := testStore(t)

	if _, err := s.AddFolder("   "); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestRemoveFolder_ClearsMembership(t *testing.T) {
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

	s.RemoveFolder(folder.ID)

	if len(s.Folders()) != 0 {
		t.Errorf("expected no folders, got %d", len(s.Folders()))
	}
	vault := s.Vault()
	if len(vault) != 1 {
		t.Fatalf("expected recipe to survive folder removal, got %d entries", len(vault))
	}
	if vault[0].FolderID != nil {
		t.Error("expected folder membership cleared on recipe")
	}
}

func TestUpdateFolderColor(t *testing.T) {
	s, _ := testStore(t)

	folder, err := s.AddFolder("Drill")
	if err != nil {
		t.Fatalf("AddFolder failed: %v", err)
	}

	s.UpdateFolderColor(folder.ID, "#a855f7")
	if got := s.Folders()[0].Color; got != "#a855f7" {
		t.Errorf("expected updated color, got %q", got)
	}
}
