package rig

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// FragmentPrefix marks a blueprint payload in a shared URL fragment.
const FragmentPrefix = "#blueprint="

// Blueprint is the shareable-link payload: a plugin list plus the recipes
// generated from it. Receivers hydrate both and drop the fragment.
type Blueprint struct {
	Plugins []plugin.Record     `json:"plugins"`
	Recipes []recipe.BeatRecipe `json:"recipes"`
}

// EncodeLink serializes a blueprint into a URL fragment:
// #blueprint=<base64(JSON)>.
func EncodeLink(b *Blueprint) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return FragmentPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeLink decodes a blueprint from a shared link. The input may be a
// full URL, a bare fragment, or just the base64 payload.
func DecodeLink(link string) (*Blueprint, error) {
	payload := link
	if idx := strings.Index(link, FragmentPrefix); idx >= 0 {
		payload = link[idx+len(FragmentPrefix):]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, errors.NewInvalidRequest("empty blueprint link")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid blueprint encoding: %v", err))
	}

	var b Blueprint
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid blueprint payload: %v", err))
	}
	return &b, nil
}
