package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Names follow the pattern "type_action".

var rackLoadToolDef = mcp.NewTool("rack_load",
	mcp.WithDescription("Parse a pasted plugin listing (DAW config or tabular format) and replace the current rack."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Raw plugin listing text")),
)

var rackLoadFileToolDef = mcp.NewTool("rack_load_file",
	mcp.WithDescription("Parse a plugin listing file and replace the current rack."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to the listing file")),
)

var rackListToolDef = mcp.NewTool("rack_list",
	mcp.WithDescription("List the plugins currently in the rack."),
)

var rackGenerateToolDef = mcp.NewTool("rack_generate",
	mcp.WithDescription("Generate beat recipes from the current rack and record them in the history."),
	mcp.WithString("objective",
		mcp.Description("Optional goal for the recipes, such as a vibe keyword or a song title. Defaults to a general rap beat ask."),
	),
)

var userSignInToolDef = mcp.NewTool("user_signin",
	mcp.WithDescription("Sign in with a display name. Email and avatar are derived from the name."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
)

var userSignOutToolDef = mcp.NewTool("user_signout",
	mcp.WithDescription("Sign out. Saved data is kept."),
)

var vaultSaveToolDef = mcp.NewTool("vault_save",
	mcp.WithDescription("Save a recipe to the vault. Duplicate titles return the existing record. Unless disabled, the current appearance is captured as a linked preset and parameters are fetched in the background."),
	mcp.WithString("recipe_json", mcp.Required(), mcp.Description("The recipe as a JSON object")),
)

var vaultListToolDef = mcp.NewTool("vault_list",
	mcp.WithDescription("List the saved recipes in the vault."),
)

var vaultRemoveToolDef = mcp.NewTool("vault_remove",
	mcp.WithDescription("Remove a saved recipe from the vault."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
)

var vaultColorToolDef = mcp.NewTool("vault_color",
	mcp.WithDescription("Set the display color of a saved recipe."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	mcp.WithString("color", mcp.Required(), mcp.Description("Hex color, e.g. #0ea5e9")),
)

var vaultFolderToolDef = mcp.NewTool("vault_folder",
	mcp.WithDescription("Move a saved recipe into a folder, or out of all folders when folder_id is empty."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	mcp.WithString("folder_id", mcp.Description("Folder id, empty to clear")),
)

var vaultLinkPresetToolDef = mcp.NewTool("vault_link_preset",
	mcp.WithDescription("Link a saved recipe to an appearance preset."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	mcp.WithString("preset_id", mcp.Description("Preset id, empty to clear")),
)

var folderAddToolDef = mcp.NewTool("folder_add",
	mcp.WithDescription("Create a folder for organizing saved recipes."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Folder name")),
)

var folderRemoveToolDef = mcp.NewTool("folder_remove",
	mcp.WithDescription("Delete a folder. Recipes inside are kept and moved out."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Folder id")),
)

var folderColorToolDef = mcp.NewTool("folder_color",
	mcp.WithDescription("Set the display color of a folder."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Folder id")),
	mcp.WithString("color", mcp.Required(), mcp.Description("Hex color")),
)

var presetSaveToolDef = mcp.NewTool("preset_save",
	mcp.WithDescription("Snapshot the current appearance as a named preset."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Preset name")),
	mcp.WithBoolean("remember_as_default", mcp.Description("Also restore this appearance on the next start")),
)

var presetRemoveToolDef = mcp.NewTool("preset_remove",
	mcp.WithDescription("Delete an appearance preset. Recipes linked to it are unlinked."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Preset id")),
)

var presetColorToolDef = mcp.NewTool("preset_color",
	mcp.WithDescription("Set the bubble color of a preset."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Preset id")),
	mcp.WithString("color", mcp.Required(), mcp.Description("Hex color")),
)

var presetApplyToolDef = mcp.NewTool("preset_apply",
	mcp.WithDescription("Apply a stored preset to the live appearance."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Preset id")),
)

var historyListToolDef = mcp.NewTool("history_list",
	mcp.WithDescription("List the generation history, newest first."),
)

var historyClearToolDef = mcp.NewTool("history_clear",
	mcp.WithDescription("Clear the generation history. The vault is untouched."),
)

var rigExportToolDef = mcp.NewTool("rig_export",
	mcp.WithDescription("Export a saved recipe, the rack, and a preset as a rig bundle file."),
	mcp.WithString("recipe_id", mcp.Description("Recipe id; defaults to the first vault entry")),
	mcp.WithString("dir", mcp.Description("Target directory; defaults to the exports directory")),
)

var rigImportToolDef = mcp.NewTool("rig_import",
	mcp.WithDescription("Import a rig bundle file and stage it for review."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to the bundle file")),
)

var rigAcceptToolDef = mcp.NewTool("rig_accept",
	mcp.WithDescription("Save the staged rig bundle's recipe into the vault."),
)

var rigCompareToolDef = mcp.NewTool("rig_compare",
	mcp.WithDescription("Categorize the staged bundle's rack against the current rack."),
)

var blueprintShareToolDef = mcp.NewTool("blueprint_share",
	mcp.WithDescription("Encode the rack and vault recipes as a shareable blueprint link."),
)

var blueprintOpenToolDef = mcp.NewTool("blueprint_open",
	mcp.WithDescription("Open a blueprint link: replace the rack with its plugin list and record its recipes in the history."),
	mcp.WithString("link", mcp.Required(), mcp.Description("Blueprint link, fragment, or raw payload")),
)

var sessionClearToolDef = mcp.NewTool("session_clear",
	mcp.WithDescription("Irreversibly wipe all saved data: user, rack, vault, folders, presets, and history."),
)
