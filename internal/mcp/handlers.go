package mcp

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/coldestconcept/beatgenius/internal/config"
	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/gen"
	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
	"github.com/coldestconcept/beatgenius/internal/rig"
	"github.com/coldestconcept/beatgenius/internal/session"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store     *session.Store
	cfg       *config.Config
	gen       gen.Client
	exportDir string
}

// NewHandlers creates a new Handlers instance. The gen client may be nil,
// in which case generation tools report GENERATION_FAILED.
func NewHandlers(store *session.Store, cfg *config.Config, client gen.Client, exportDir string) *Handlers {
	return &Handlers{store: store, cfg: cfg, gen: client, exportDir: exportDir}
}

// Request types for each tool

// RackLoadRequest represents the arguments for rack_load.
type RackLoadRequest struct {
	Text string `json:"text"`
}

// RackLoadFileRequest represents the arguments for rack_load_file.
type RackLoadFileRequest struct {
	Path string `json:"path"`
}

// RackGenerateRequest represents the arguments for rack_generate.
type RackGenerateRequest struct {
	Objective string `json:"objective,omitempty"`
}

// SignInRequest represents the arguments for user_signin.
type SignInRequest struct {
	Name string `json:"name"`
}

// VaultSaveRequest represents the arguments for vault_save.
type VaultSaveRequest struct {
	RecipeJSON string `json:"recipe_json"`
}

// IDRequest represents the arguments for tools addressing one entity.
type IDRequest struct {
	ID string `json:"id"`
}

// ColorRequest represents the arguments for color-update tools.
type ColorRequest struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// VaultFolderRequest represents the arguments for vault_folder.
type VaultFolderRequest struct {
	ID       string `json:"id"`
	FolderID string `json:"folder_id,omitempty"`
}

// VaultLinkPresetRequest represents the arguments for vault_link_preset.
type VaultLinkPresetRequest struct {
	ID       string `json:"id"`
	PresetID string `json:"preset_id,omitempty"`
}

// FolderAddRequest represents the arguments for folder_add.
type FolderAddRequest struct {
	Name string `json:"name"`
}

// PresetSaveRequest represents the arguments for preset_save.
type PresetSaveRequest struct {
	Name              string `json:"name"`
	RememberAsDefault bool   `json:"remember_as_default,omitempty"`
}

// RigExportRequest represents the arguments for rig_export.
type RigExportRequest struct {
	RecipeID string `json:"recipe_id,omitempty"`
	Dir      string `json:"dir,omitempty"`
}

// RigImportRequest represents the arguments for rig_import.
type RigImportRequest struct {
	Path string `json:"path"`
}

// BlueprintOpenRequest represents the arguments for blueprint_open.
type BlueprintOpenRequest struct {
	Link string `json:"link"`
}

// Handler implementations

// HandleRackLoad handles the rack_load tool call.
func (h *Handlers) HandleRackLoad(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RackLoadRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	records, err := plugin.Parse(input.Text)
	if err != nil {
		return errorResult(err), nil
	}
	h.store.SetPlugins(records)

	return successResult(map[string]any{"plugins": records, "count": len(records)})
}

// HandleRackLoadFile handles the rack_load_file tool call.
func (h *Handlers) HandleRackLoadFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RackLoadFileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	records, err := plugin.ParseFile(input.Path)
	if err != nil {
		return errorResult(err), nil
	}
	h.store.SetPlugins(records)

	return successResult(map[string]any{"plugins": records, "count": len(records)})
}

// HandleRackList handles the rack_list tool call.
func (h *Handlers) HandleRackList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records := h.store.Plugins()
	return successResult(map[string]any{"plugins": records, "count": len(records)})
}

// HandleRackGenerate handles the rack_generate tool call.
func (h *Handlers) HandleRackGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.gen == nil {
		return errorResult(errors.NewGenerationFailed(nil)), nil
	}

	input, err := decode[RackGenerateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	recipes, err := h.gen.Recommendations(ctx, h.store.Plugins(), input.Objective)
	if err != nil {
		return errorResult(err), nil
	}
	h.store.AppendHistory(recipes)

	return successResult(map[string]any{"recipes": recipes})
}

// HandleUserSignIn handles the user_signin tool call.
func (h *Handlers) HandleUserSignIn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SignInRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	user, err := h.store.SignIn(input.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(user)
}

// HandleUserSignOut handles the user_signout tool call.
func (h *Handlers) HandleUserSignOut(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.store.SignOut()
	return successResult(map[string]any{"signed_out": true})
}

// HandleVaultSave handles the vault_save tool call. After a successful
// save, parameters are fetched and attached best-effort: a failed fetch is
// logged and the save result is returned unchanged.
func (h *Handlers) HandleVaultSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[VaultSaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var r recipe.BeatRecipe
	if err := json.Unmarshal([]byte(input.RecipeJSON), &r); err != nil {
		return errorResult(errors.NewInvalidRequest("recipe_json is not a valid recipe: " + err.Error())), nil
	}

	saved, created, err := h.store.SaveRecipe(r)
	if err != nil {
		return errorResult(err), nil
	}

	if created && h.gen != nil && !h.cfg.NoEnrich {
		if params, err := h.gen.Parameters(ctx, saved.BeatRecipe); err != nil {
			log.Printf("warning: parameter enrichment failed for %q: %v", saved.Title, err)
		} else {
			h.store.ApplyParameters(saved.ID, params)
			saved.Parameters = params
		}
	}

	return successResult(map[string]any{"recipe": saved, "created": created})
}

// HandleVaultList handles the vault_list tool call.
func (h *Handlers) HandleVaultList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vault := h.store.Vault()
	return successResult(map[string]any{"recipes": vault, "count": len(vault)})
}

// HandleVaultRemove handles the vault_remove tool call.
func (h *Handlers) HandleVaultRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.store.RemoveRecipe(input.ID)
	return successResult(map[string]any{"removed": input.ID})
}

// HandleVaultColor handles the vault_color tool call.
func (h *Handlers) HandleVaultColor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ColorRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.store.UpdateRecipeColor(input.ID, input.Color)
	return successResult(map[string]any{"id": input.ID, "color": input.Color})
}

// HandleVaultFolder handles the vault_folder tool call.
func (h *Handlers) HandleVaultFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[VaultFolderRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.UpdateRecipeFolder(input.ID, input.FolderID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"id": input.ID, "folder_id": input.FolderID})
}

// HandleVaultLinkPreset handles the vault_link_preset tool call.
func (h *Handlers) HandleVaultLinkPreset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[VaultLinkPresetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.UpdateRecipeLinkedPreset(input.ID, input.PresetID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"id": input.ID, "preset_id": input.PresetID})
}

// HandleFolderAdd handles the folder_add tool call.
func (h *Handlers) HandleFolderAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	folder, err := h.store.AddFolder(input.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(folder)
}

// HandleFolderRemove handles the folder_remove tool call.
func (h *Handlers) HandleFolderRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.store.RemoveFolder(input.ID)
	return successResult(map[string]any{"removed": input.ID})
}

// HandleFolderColor handles the folder_color tool call.
func (h *Handlers) HandleFolderColor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ColorRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.store.UpdateFolderColor(input.ID, input.Color)
	return successResult(map[string]any{"id": input.ID, "color": input.Color})
}

// HandlePresetSave handles the preset_save tool call.
func (h *Handlers) HandlePresetSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PresetSaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	preset, err := h.store.SavePreset(input.Name, input.RememberAsDefault)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(preset)
}

// HandlePresetRemove handles the preset_remove tool call.
func (h *Handlers) HandlePresetRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.store.RemovePreset(input.ID)
	return successResult(map[string]any{"removed": input.ID})
}

// HandlePresetColor handles the preset_color tool call.
func (h *Handlers) HandlePresetColor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ColorRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.store.UpdatePresetColor(input.ID, input.Color)
	return successResult(map[string]any{"id": input.ID, "color": input.Color})
}

// HandlePresetApply handles the preset_apply tool call.
func (h *Handlers) HandlePresetApply(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.ApplyPreset(input.ID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"applied": input.ID})
}

// HandleHistoryList handles the history_list tool call.
func (h *Handlers) HandleHistoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history := h.store.History()
	return successResult(map[string]any{"history": history, "count": len(history)})
}

// HandleHistoryClear handles the history_clear tool call.
func (h *Handlers) HandleHistoryClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.store.ClearHistory()
	return successResult(map[string]any{"cleared": true})
}

// HandleRigExport handles the rig_export tool call.
func (h *Handlers) HandleRigExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RigExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	bundle, err := h.store.BuildRig(input.RecipeID)
	if err != nil {
		return errorResult(err), nil
	}

	dir := input.Dir
	if dir == "" {
		dir = h.exportDir
	}
	path, err := rig.Write(bundle, dir)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"path": path})
}

// HandleRigImport handles the rig_import tool call.
func (h *Handlers) HandleRigImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RigImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	bundle, err := rig.ReadFile(input.Path)
	if err != nil {
		return errorResult(err), nil
	}
	h.store.SetIncoming(bundle)

	return successResult(map[string]any{
		"sender":  bundle.SenderName,
		"recipe":  bundle.Recipe.Title,
		"plugins": len(bundle.SenderPlugins),
	})
}

// HandleRigAccept handles the rig_accept tool call.
func (h *Handlers) HandleRigAccept(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	saved, err := h.store.AcceptIncoming()
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(saved)
}

// HandleRigCompare handles the rig_compare tool call.
func (h *Handlers) HandleRigCompare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	incoming := h.store.Incoming()
	if incoming == nil {
		return errorResult(errors.NewInvalidRequest("no incoming rig to compare")), nil
	}
	if h.gen == nil {
		return errorResult(errors.NewGenerationFailed(nil)), nil
	}

	cmp, err := h.gen.CompareLibraries(ctx, incoming.SenderPlugins, h.store.Plugins())
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(cmp)
}

// HandleBlueprintShare handles the blueprint_share tool call.
func (h *Handlers) HandleBlueprintShare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vault := h.store.Vault()
	recipes := make([]recipe.BeatRecipe, 0, len(vault))
	for _, r := range vault {
		recipes = append(recipes, r.BeatRecipe)
	}

	link, err := rig.EncodeLink(&rig.Blueprint{
		Plugins: h.store.Plugins(),
		Recipes: recipes,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"link": link})
}

// HandleBlueprintOpen handles the blueprint_open tool call.
func (h *Handlers) HandleBlueprintOpen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BlueprintOpenRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	blueprint, err := rig.DecodeLink(input.Link)
	if err != nil {
		return errorResult(err), nil
	}

	// Hydrate the session from the link: the shared rack replaces the
	// current one, and shared recipes land in the history.
	if len(blueprint.Plugins) > 0 {
		h.store.SetPlugins(blueprint.Plugins)
	}
	h.store.AppendHistory(blueprint.Recipes)

	return successResult(blueprint)
}

// HandleSessionClear handles the session_clear tool call.
func (h *Handlers) HandleSessionClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.store.ClearAll()
	return successResult(map[string]any{"cleared": true})
}

// errorResult creates an MCP error result from any error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if bgErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    bgErr.Code,
			"message": bgErr.Message,
			"status":  bgErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or driver errors
		if bgErr.Code != errors.ErrInternal && bgErr.Details != nil {
			errorObj["details"] = bgErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
