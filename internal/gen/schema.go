package gen

import "google.golang.org/genai"

// Response schemas passed to the model. The API enforces these shapes,
// but payloads are still validated after decoding; schema conformance
// does not guarantee non-empty content.

var recommendationsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recipes": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       {Type: genai.TypeString},
					"style":       {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"ingredients": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"instrument": {Type: genai.TypeString},
								"processing": {
									Type: genai.TypeArray,
									Items: &genai.Schema{
										Type: genai.TypeObject,
										Properties: map[string]*genai.Schema{
											"pluginName": {Type: genai.TypeString},
											"purpose":    {Type: genai.TypeString},
										},
										Required: []string{"pluginName", "purpose"},
									},
								},
							},
							Required: []string{"instrument", "processing"},
						},
					},
					"mastering": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeString},
					},
				},
				Required: []string{"title", "style", "description", "ingredients", "mastering"},
			},
		},
	},
	Required: []string{"recipes"},
}

var parametersSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recipeTitle": {Type: genai.TypeString},
		"dives": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"pluginName": {Type: genai.TypeString},
					"settings": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"parameter":   {Type: genai.TypeString},
								"value":       {Type: genai.TypeString},
								"explanation": {Type: genai.TypeString},
							},
							Required: []string{"parameter", "value", "explanation"},
						},
					},
					"proTip": {Type: genai.TypeString},
				},
				Required: []string{"pluginName", "settings", "proTip"},
			},
		},
		"mixingAdvice": {Type: genai.TypeString},
	},
	Required: []string{"recipeTitle", "dives", "mixingAdvice"},
}

var compareSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"categories": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"category": {Type: genai.TypeString},
					"sender":   comparedPluginSchema(),
					"mine":     comparedPluginSchema(),
				},
				Required: []string{"category", "sender", "mine"},
			},
		},
		"summary": {Type: genai.TypeString},
	},
	Required: []string{"categories", "summary"},
}

func comparedPluginSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":   {Type: genai.TypeString},
				"vendor": {Type: genai.TypeString},
				"shared": {Type: genai.TypeBoolean},
			},
			Required: []string{"name", "vendor", "shared"},
		},
	}
}
