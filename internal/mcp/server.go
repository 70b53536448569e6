package mcp

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/coldestconcept/beatgenius/internal/config"
	"github.com/coldestconcept/beatgenius/internal/gen"
	"github.com/coldestconcept/beatgenius/internal/session"
)

// KnownTypes lists all valid type names.
var KnownTypes = []string{"rack", "user", "vault", "folder", "preset", "history", "rig", "blueprint", "session"}

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"rack_load": {
		def:     rackLoadToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRackLoad },
	},
	"rack_load_file": {
		def:     rackLoadFileToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRackLoadFile },
	},
	"rack_list": {
		def:     rackListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRackList },
	},
	"rack_generate": {
		def:     rackGenerateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRackGenerate },
	},
	"user_signin": {
		def:     userSignInToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUserSignIn },
	},
	"user_signout": {
		def:     userSignOutToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUserSignOut },
	},
	"vault_save": {
		def:     vaultSaveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVaultSave },
	},
	"vault_list": {
		def:     vaultListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVaultList },
	},
	"vault_remove": {
		def:     vaultRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVaultRemove },
	},
	"vault_color": {
		def:     vaultColorToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVaultColor },
	},
	"vault_folder": {
		def:     vaultFolderToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVaultFolder },
	},
	"vault_link_preset": {
		def:     vaultLinkPresetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVaultLinkPreset },
	},
	"folder_add": {
		def:     folderAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderAdd },
	},
	"folder_remove": {
		def:     folderRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderRemove },
	},
	"folder_color": {
		def:     folderColorToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderColor },
	},
	"preset_save": {
		def:     presetSaveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePresetSave },
	},
	"preset_remove": {
		def:     presetRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePresetRemove },
	},
	"preset_color": {
		def:     presetColorToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePresetColor },
	},
	"preset_apply": {
		def:     presetApplyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePresetApply },
	},
	"history_list": {
		def:     historyListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistoryList },
	},
	"history_clear": {
		def:     historyClearToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistoryClear },
	},
	"rig_export": {
		def:     rigExportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRigExport },
	},
	"rig_import": {
		def:     rigImportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRigImport },
	},
	"rig_accept": {
		def:     rigAcceptToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRigAccept },
	},
	"rig_compare": {
		def:     rigCompareToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRigCompare },
	},
	"blueprint_share": {
		def:     blueprintShareToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBlueprintShare },
	},
	"blueprint_open": {
		def:     blueprintOpenToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBlueprintOpen },
	},
	"session_clear": {
		def:     sessionClearToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSessionClear },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ValidateDisabledTypes returns a list of unknown type names from the given list.
func ValidateDisabledTypes(names []string) []string {
	known := make(map[string]bool, len(KnownTypes))
	for _, t := range KnownTypes {
		known[t] = true
	}

	unknown := make([]string, 0)
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// GetTypeForTool extracts the type name from a tool name.
// Tool names follow the pattern "type_action" (e.g., "vault_save" → "vault").
func GetTypeForTool(toolName string) string {
	if idx := strings.Index(toolName, "_"); idx > 0 {
		return toolName[:idx]
	}
	return ""
}

// ExpandTypesToTools returns all tool names belonging to the given types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}

	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	tools := make([]string, 0)
	for name := range toolRegistry {
		typ := GetTypeForTool(name)
		if typeSet[typ] {
			tools = append(tools, name)
		}
	}
	return tools
}

// NewServer creates a new MCP server with BeatGenius tools registered.
// Tools listed in cfg.DisabledTools or belonging to cfg.DisabledTypes
// are excluded from registration.
func NewServer(store *session.Store, cfg *config.Config, client gen.Client, exportDir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"beatgenius",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(store, cfg, client, exportDir)

	// Build set of disabled tools: first expand types, then add individual tools
	disabled := make(map[string]bool)
	for _, tool := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[tool] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(store *session.Store, cfg *config.Config, client gen.Client, exportDir, version string) error {
	s := NewServer(store, cfg, client, exportDir, version)
	return server.ServeStdio(s)
}
