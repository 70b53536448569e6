package session

import (
	"strings"

	"github.com/coldestconcept/beatgenius/internal/db"
	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// folderIndexLocked returns the index of the folder with the given id, or
// -1. Callers must hold s.mu.
func (s *Store) folderIndexLocked(id string) int {
	for i := range s.folders {
		if s.folders[i].ID == id {
			return i
		}
	}
	return -1
}

// AddFolder creates a flat named grouping for saved recipes.
func (s *Store) AddFolder(name string) (*recipe.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidRequest("folder name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folder := recipe.Folder{ID: newULID(), Name: name}
	s.folders = append(s.folders, folder)
	s.persist(db.KeyFolders, s.folders)

	out := folder
	return &out, nil
}

// RemoveFolder deletes a folder and clears folder membership on every
// saved recipe that referenced it. The recipes themselves are kept.
// Removing an absent id is a no-op.
func (s *Store) RemoveFolder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.folders[:0]
	for _, f := range s.folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.folders = kept

	for i := range s.vault {
		if s.vault[i].FolderID != nil && *s.vault[i].FolderID == id {
			s.vault[i].FolderID = nil
		}
	}

	s.persist(db.KeyFolders, s.folders)
	s.persist(db.KeyVault, s.vault)
}

// UpdateFolderColor sets the display color on the matching folder.
// No-op if the id is absent.
func (s *Store) UpdateFolderColor(id, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.folders {
		if s.folders[i].ID == id {
			s.folders[i].Color = color
			break
		}
	}
	s.persist(db.KeyFolders, s.folders)
}
