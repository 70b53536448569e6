package recipe

// Types for beat recipes and the session collections built around them.
// JSON field names follow the rig-bundle interchange format, which must
// round-trip bit-exactly between exports and imports.

// SignalChainStep is one plugin in an ingredient's processing chain.
type SignalChainStep struct {
	PluginName string `json:"pluginName"`
	Purpose    string `json:"purpose"`
}

// Ingredient pairs an instrument with its processing chain.
type Ingredient struct {
	Instrument string            `json:"instrument"`
	Processing []SignalChainStep `json:"processing"`
}

// BeatRecipe is a suggested signal chain produced by the generation
// service. The core treats it as opaque payload except for Title, which
// acts as the natural key for duplicate-save detection.
type BeatRecipe struct {
	Title       string       `json:"title"`
	Style       string       `json:"style"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	Mastering   []string     `json:"mastering"`
}

// ParameterSetting is one suggested knob value with its explanation.
type ParameterSetting struct {
	Parameter   string `json:"parameter"`
	Value       string `json:"value"`
	Explanation string `json:"explanation"`
}

// PluginDeepDive holds detailed settings for one plugin in a recipe.
type PluginDeepDive struct {
	PluginName string             `json:"pluginName"`
	Settings   []ParameterSetting `json:"settings"`
	ProTip     string             `json:"proTip"`
}

// Parameters is the enrichment payload fetched after a recipe is saved.
// Best-effort: a failed fetch leaves SavedRecipe.Parameters nil.
type Parameters struct {
	RecipeTitle  string           `json:"recipeTitle"`
	Dives        []PluginDeepDive `json:"dives"`
	MixingAdvice string           `json:"mixingAdvice"`
}

// SavedRecipe is a favorited BeatRecipe in the vault.
// FolderID and LinkedPresetID are nil when unset; an empty string from a
// caller is normalized to unset, never stored.
type SavedRecipe struct {
	BeatRecipe

	// ID is a ULID unique within the vault
	ID string `json:"id"`

	// SavedAt is an RFC 3339 timestamp
	SavedAt string `json:"savedAt"`

	// BubbleColor is the user-chosen display color
	BubbleColor string `json:"bubbleColor"`

	// FolderID references a Folder, if any
	FolderID *string `json:"folderId,omitempty"`

	// LinkedPresetID references a UIPreset, if any
	LinkedPresetID *string `json:"linkedPresetId,omitempty"`

	// Parameters is the enrichment payload, if the fetch succeeded
	Parameters *Parameters `json:"parameters,omitempty"`
}

// HistoryItem is one entry in the append-only generation log.
type HistoryItem struct {
	BeatRecipe

	GeneratedAt string `json:"generatedAt"`
}

// Folder is a flat named grouping for saved recipes.
type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Appearance is the live cosmetic state: theme, style selectors, colors,
// and boolean toggles.
type Appearance struct {
	Theme           string `json:"theme"`
	GrillStyle      string `json:"grillStyle"`
	KnifeStyle      string `json:"knifeStyle"`
	DuragStyle      string `json:"duragStyle"`
	PendantStyle    string `json:"pendantStyle"`
	ChainStyle      string `json:"chainStyle"`
	SaberColor      string `json:"saberColor"`
	ShowChain       bool   `json:"showChain"`
	HighEyes        bool   `json:"highEyes"`
	IsCigarEquipped bool   `json:"isCigarEquipped"`
	ShowChefHat     bool   `json:"showChefHat"`
}

// UIPreset is a named snapshot of the appearance, captured explicitly or
// automatically when a recipe is favorited.
type UIPreset struct {
	Appearance

	ID          string `json:"id"`
	Name        string `json:"name"`
	BubbleColor string `json:"bubbleColor"`
	CreatedAt   string `json:"createdAt"`
}

// User is the identity record. The only states are anonymous (no record)
// and signed-in.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}
