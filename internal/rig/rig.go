package rig

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// Bundle is the portable rig export: one recipe, the sender's plugin list,
// and the appearance preset tied to the recipe. This is the only bit-exact
// interchange format in the system and must round-trip.
type Bundle struct {
	Recipe        recipe.SavedRecipe `json:"recipe"`
	SenderPlugins []plugin.Record    `json:"senderPlugins"`
	Preset        recipe.UIPreset    `json:"preset"`
	SenderName    string             `json:"senderName"`
}

// filenameUnsafe matches characters stripped from export filenames.
var filenameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// sanitizeForFilename collapses anything outside [a-zA-Z0-9_-] to a single
// underscore so titles and sender names cannot inject path segments.
func sanitizeForFilename(s string) string {
	out := filenameUnsafe.ReplaceAllString(s, "_")
	if out == "" {
		return "untitled"
	}
	return out
}

// Filename returns the export filename for a bundle:
// {senderName}_Export_Rig_{sanitizedRecipeTitle}.json
func Filename(senderName, recipeTitle string) string {
	return fmt.Sprintf("%s_Export_Rig_%s.json",
		sanitizeForFilename(senderName), sanitizeForFilename(recipeTitle))
}

// Write serializes the bundle into dir using the standard filename.
// The file is written to a temp name first and renamed into place so a
// failed write never leaves a truncated bundle behind.
func Write(b *Bundle, dir string) (string, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", errors.NewInternal(err)
	}

	path := filepath.Join(dir, Filename(b.SenderName, b.Recipe.Title))

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to write rig bundle: %w", err))
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", errors.NewInternal(fmt.Errorf("failed to finalize rig bundle: %w", err))
	}

	return path, nil
}

// Parse validates and decodes a rig bundle. The three non-sender fields
// (recipe, senderPlugins, preset) are required; a bundle missing any of
// them is rejected with IMPORT_INVALID and no partial result.
func Parse(data []byte) (*Bundle, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewImportInvalid([]string{"recipe", "senderPlugins", "preset"})
	}

	var missing []string
	for _, field := range []string{"recipe", "senderPlugins", "preset"} {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewImportInvalid(missing)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.NewImportInvalid([]string{"recipe", "senderPlugins", "preset"})
	}
	return &b, nil
}

// ReadFile loads and parses a rig bundle from disk.
func ReadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO(path, err)
	}
	return Parse(data)
}
