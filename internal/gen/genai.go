package gen

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// GeminiClient implements Client against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.NewInvalidRequest("Gemini API key is required; set GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create Gemini client: %w", err))
	}

	return &GeminiClient{client: client, model: model}, nil
}

// generate runs one schema-constrained call and returns the raw JSON text.
func (c *GeminiClient) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *GeminiClient) Recommendations(ctx context.Context, plugins []plugin.Record, objective string) ([]recipe.BeatRecipe, error) {
	if len(plugins) == 0 {
		return nil, errors.NewInvalidRequest("load a plugin list before generating recipes")
	}

	text, err := c.generate(ctx, recommendationsPrompt(plugins, objective), recommendationsSchema)
	if err != nil {
		return nil, errors.NewGenerationFailed(err)
	}

	var payload struct {
		Recipes []recipe.BeatRecipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, errors.NewGenerationFailed(err)
	}
	if err := recipe.ValidateRecipes(payload.Recipes); err != nil {
		return nil, errors.NewGenerationFailed(err)
	}
	return payload.Recipes, nil
}

func (c *GeminiClient) Parameters(ctx context.Context, r recipe.BeatRecipe) (*recipe.Parameters, error) {
	text, err := c.generate(ctx, parametersPrompt(r), parametersSchema)
	if err != nil {
		return nil, errors.NewEnrichmentFailed(err)
	}

	var p recipe.Parameters
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, errors.NewEnrichmentFailed(err)
	}
	if err := recipe.ValidateParameters(&p); err != nil {
		return nil, errors.NewEnrichmentFailed(err)
	}
	return &p, nil
}

func (c *GeminiClient) CompareLibraries(ctx context.Context, sender, mine []plugin.Record) (*RackComparison, error) {
	text, err := c.generate(ctx, comparePrompt(sender, mine), compareSchema)
	if err != nil {
		return nil, errors.NewGenerationFailed(err)
	}

	var cmp RackComparison
	if err := json.Unmarshal([]byte(text), &cmp); err != nil {
		return nil, errors.NewGenerationFailed(err)
	}
	if len(cmp.Categories) == 0 {
		return nil, errors.NewGenerationFailed(fmt.Errorf("comparison returned no categories"))
	}
	return &cmp, nil
}
