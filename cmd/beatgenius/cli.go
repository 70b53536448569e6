package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/coldestconcept/beatgenius/internal/config"
	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/gen"
	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
	"github.com/coldestconcept/beatgenius/internal/rig"
	"github.com/coldestconcept/beatgenius/internal/session"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(store *session.Store, cfg *config.Config, client gen.Client, exportDir string) *cli.App {
	app := &cli.App{
		Name:    "beatgenius",
		Usage:   "Plugin rack analyzer and beat recipe vault",
		Version: Version,
		Commands: []*cli.Command{
			loadCmd(store),
			rackCmd(store),
			generateCmd(store, client),
			signinCmd(store),
			signoutCmd(store),
			vaultCmd(store, cfg, client),
			folderCmd(store),
			presetCmd(store),
			historyCmd(store),
			rigCmd(store, client, exportDir),
			shareCmd(store),
			openCmd(store),
			stationCmd(store, exportDir),
			clearCmd(store),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loadCmd creates the load command.
func loadCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Parse a plugin listing and replace the rack (reads from stdin or --file)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Path to a listing file"},
		},
		Action: func(c *cli.Context) error {
			var records []plugin.Record
			var err error

			if path := c.String("file"); path != "" {
				records, err = plugin.ParseFile(path)
			} else {
				if !stdinHasData() {
					return outputError(errors.NewInvalidRequest("pipe a plugin listing via stdin or pass --file"))
				}
				var text string
				text, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				records, err = plugin.Parse(text)
			}
			if err != nil {
				return outputError(err)
			}

			store.SetPlugins(records)
			return outputJSON(map[string]any{"plugins": records, "count": len(records)})
		},
	}
}

// rackCmd creates the rack command.
func rackCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:  "rack",
		Usage: "List the plugins currently in the rack",
		Action: func(c *cli.Context) error {
			records := store.Plugins()
			return outputJSON(map[string]any{"plugins": records, "count": len(records)})
		},
	}
}

// generateCmd creates the generate command.
func generateCmd(store *session.Store, client gen.Client) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate beat recipes from the current rack",
		ArgsUsage: "[objective]",
		Action: func(c *cli.Context) error {
			if client == nil {
				return outputError(errors.NewGenerationFailed(nil))
			}

			objective := strings.Join(c.Args().Slice(), " ")
			recipes, err := client.Recommendations(c.Context, store.Plugins(), objective)
			if err != nil {
				return outputError(err)
			}
			store.AppendHistory(recipes)
			return outputJSON(map[string]any{"recipes": recipes})
		},
	}
}

// signinCmd creates the signin command.
func signinCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:      "signin",
		Usage:     "Sign in with a display name",
		ArgsUsage: "<name>",
		Action: func(c *cli.Context) error {
			user, err := store.SignIn(c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(user)
		},
	}
}

// signoutCmd creates the signout command.
func signoutCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:  "signout",
		Usage: "Sign out (saved data is kept)",
		Action: func(c *cli.Context) error {
			store.SignOut()
			return outputJSON(map[string]any{"signed_out": true})
		},
	}
}

// vaultCmd creates the vault command group.
func vaultCmd(store *session.Store, cfg *config.Config, client gen.Client) *cli.Command {
	return &cli.Command{
		Name:  "vault",
		Usage: "Manage saved recipes",
		Subcommands: []*cli.Command{
			{
				Name:  "save",
				Usage: "Save a recipe to the vault (reads recipe JSON from stdin)",
				Action: func(c *cli.Context) error {
					if !stdinHasData() {
						return outputError(errors.NewInvalidRequest("recipe JSON must be piped via stdin"))
					}
					text, err := readStdin()
					if err != nil {
						return outputError(errors.NewInternal(err))
					}

					var r recipe.BeatRecipe
					if err := json.Unmarshal([]byte(text), &r); err != nil {
						return outputError(errors.NewInvalidRequest("stdin is not a valid recipe: " + err.Error()))
					}

					saved, created, err := store.SaveRecipe(r)
					if err != nil {
						return outputError(err)
					}

					if created && client != nil && !cfg.NoEnrich {
						enrichRecipe(c.Context, store, client, saved)
					}

					return outputJSON(map[string]any{"recipe": saved, "created": created})
				},
			},
			{
				Name:  "list",
				Usage: "List saved recipes",
				Action: func(c *cli.Context) error {
					vault := store.Vault()
					return outputJSON(map[string]any{"recipes": vault, "count": len(vault)})
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a saved recipe",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					store.RemoveRecipe(c.Args().First())
					return outputJSON(map[string]any{"removed": c.Args().First()})
				},
			},
			{
				Name:      "color",
				Usage:     "Set the display color of a saved recipe",
				ArgsUsage: "<id> <color>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: vault color <id> <color>"))
					}
					store.UpdateRecipeColor(c.Args().Get(0), c.Args().Get(1))
					return outputJSON(map[string]any{"id": c.Args().Get(0), "color": c.Args().Get(1)})
				},
			},
			{
				Name:      "folder",
				Usage:     "Move a recipe into a folder (omit folder id to clear)",
				ArgsUsage: "<id> [folder-id]",
				Action: func(c *cli.Context) error {
					if err := store.UpdateRecipeFolder(c.Args().Get(0), c.Args().Get(1)); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"id": c.Args().Get(0), "folder_id": c.Args().Get(1)})
				},
			},
			{
				Name:      "link",
				Usage:     "Link a recipe to an appearance preset (omit preset id to clear)",
				ArgsUsage: "<id> [preset-id]",
				Action: func(c *cli.Context) error {
					if err := store.UpdateRecipeLinkedPreset(c.Args().Get(0), c.Args().Get(1)); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"id": c.Args().Get(0), "preset_id": c.Args().Get(1)})
				},
			},
		},
	}
}

// folderCmd creates the folder command group.
func folderCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:  "folder",
		Usage: "Manage recipe folders",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a folder",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					folder, err := store.AddFolder(c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(folder)
				},
			},
			{
				Name:      "remove",
				Usage:     "Delete a folder (recipes inside are kept)",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					store.RemoveFolder(c.Args().First())
					return outputJSON(map[string]any{"removed": c.Args().First()})
				},
			},
			{
				Name:      "color",
				Usage:     "Set the display color of a folder",
				ArgsUsage: "<id> <color>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: folder color <id> <color>"))
					}
					store.UpdateFolderColor(c.Args().Get(0), c.Args().Get(1))
					return outputJSON(map[string]any{"id": c.Args().Get(0), "color": c.Args().Get(1)})
				},
			},
			{
				Name:  "list",
				Usage: "List folders",
				Action: func(c *cli.Context) error {
					folders := store.Folders()
					return outputJSON(map[string]any{"folders": folders, "count": len(folders)})
				},
			},
		},
	}
}

// presetCmd creates the preset command group.
func presetCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:  "preset",
		Usage: "Manage appearance presets",
		Subcommands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Snapshot the current appearance as a named preset",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "Also restore this appearance on the next start"},
				},
				Action: func(c *cli.Context) error {
					preset, err := store.SavePreset(c.Args().First(), c.Bool("default"))
					if err != nil {
						return outputError(err)
					}
					return outputJSON(preset)
				},
			},
			{
				Name:      "remove",
				Usage:     "Delete a preset (linked recipes are unlinked)",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					store.RemovePreset(c.Args().First())
					return outputJSON(map[string]any{"removed": c.Args().First()})
				},
			},
			{
				Name:      "color",
				Usage:     "Set the bubble color of a preset",
				ArgsUsage: "<id> <color>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: preset color <id> <color>"))
					}
					store.UpdatePresetColor(c.Args().Get(0), c.Args().Get(1))
					return outputJSON(map[string]any{"id": c.Args().Get(0), "color": c.Args().Get(1)})
				},
			},
			{
				Name:      "apply",
				Usage:     "Apply a stored preset to the live appearance",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if err := store.ApplyPreset(c.Args().First()); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"applied": c.Args().First()})
				},
			},
			{
				Name:  "list",
				Usage: "List presets",
				Action: func(c *cli.Context) error {
					presets := store.Presets()
					return outputJSON(map[string]any{"presets": presets, "count": len(presets)})
				},
			},
		},
	}
}

// historyCmd creates the history command group.
func historyCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show the generation history, newest first",
		Subcommands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "Clear the generation history",
				Action: func(c *cli.Context) error {
					store.ClearHistory()
					return outputJSON(map[string]any{"cleared": true})
				},
			},
		},
		Action: func(c *cli.Context) error {
			history := store.History()
			return outputJSON(map[string]any{"history": history, "count": len(history)})
		},
	}
}

// rigCmd creates the rig command group.
func rigCmd(store *session.Store, client gen.Client, exportDir string) *cli.Command {
	return &cli.Command{
		Name:  "rig",
		Usage: "Export and import rig bundles",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Export a saved recipe, the rack, and a preset as a bundle file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "recipe", Aliases: []string{"r"}, Usage: "Recipe id (defaults to the first vault entry)"},
					&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Target directory (defaults to the exports directory)"},
				},
				Action: func(c *cli.Context) error {
					bundle, err := store.BuildRig(c.String("recipe"))
					if err != nil {
						return outputError(err)
					}

					dir := c.String("dir")
					if dir == "" {
						dir = exportDir
					}
					path, err := rig.Write(bundle, dir)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"path": path})
				},
			},
			{
				Name:      "import",
				Usage:     "Import a rig bundle file and stage it for review",
				ArgsUsage: "<path>",
				Action: func(c *cli.Context) error {
					bundle, err := rig.ReadFile(c.Args().First())
					if err != nil {
						return outputError(err)
					}
					store.SetIncoming(bundle)
					return outputJSON(map[string]any{
						"sender":  bundle.SenderName,
						"recipe":  bundle.Recipe.Title,
						"plugins": len(bundle.SenderPlugins),
					})
				},
			},
			{
				Name:  "accept",
				Usage: "Save the staged bundle's recipe into the vault",
				Action: func(c *cli.Context) error {
					saved, err := store.AcceptIncoming()
					if err != nil {
						return outputError(err)
					}
					return outputJSON(saved)
				},
			},
			{
				Name:  "compare",
				Usage: "Categorize the staged bundle's rack against the current rack",
				Action: func(c *cli.Context) error {
					incoming := store.Incoming()
					if incoming == nil {
						return outputError(errors.NewInvalidRequest("no incoming rig to compare"))
					}
					if client == nil {
						return outputError(errors.NewGenerationFailed(nil))
					}

					cmp, err := client.CompareLibraries(c.Context, incoming.SenderPlugins, store.Plugins())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(cmp)
				},
			},
		},
	}
}

// shareCmd creates the share command.
func shareCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: "Encode the rack and vault recipes as a blueprint link",
		Action: func(c *cli.Context) error {
			vault := store.Vault()
			recipes := make([]recipe.BeatRecipe, 0, len(vault))
			for _, r := range vault {
				recipes = append(recipes, r.BeatRecipe)
			}

			link, err := rig.EncodeLink(&rig.Blueprint{
				Plugins: store.Plugins(),
				Recipes: recipes,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"link": link})
		},
	}
}

// openCmd creates the open command.
func openCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a blueprint link, replacing the rack and recording its recipes",
		ArgsUsage: "<link>",
		Action: func(c *cli.Context) error {
			blueprint, err := rig.DecodeLink(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			if len(blueprint.Plugins) > 0 {
				store.SetPlugins(blueprint.Plugins)
			}
			store.AppendHistory(blueprint.Recipes)

			return outputJSON(blueprint)
		},
	}
}

// stationCmd creates the station command.
func stationCmd(store *session.Store, exportDir string) *cli.Command {
	return &cli.Command{
		Name:  "station",
		Usage: "Export the vault and rack as a self-contained offline HTML studio",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Target directory (defaults to the exports directory)"},
		},
		Action: func(c *cli.Context) error {
			vault := store.Vault()
			recipes := make([]recipe.BeatRecipe, 0, len(vault))
			for _, r := range vault {
				recipes = append(recipes, r.BeatRecipe)
			}

			dir := c.String("dir")
			if dir == "" {
				dir = exportDir
			}
			path, err := rig.WriteStation(&rig.Station{
				Recipes:    recipes,
				Plugins:    store.Plugins(),
				Theme:      store.Appearance().Theme,
				ExportedAt: time.Now().UTC(),
			}, dir)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"path": path})
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(store *session.Store) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Irreversibly wipe all saved data",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Usage: "Confirm the wipe"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return outputError(errors.NewInvalidRequest("pass --yes to confirm wiping all saved data"))
			}
			store.ClearAll()
			return outputJSON(map[string]any{"cleared": true})
		},
	}
}

// enrichRecipe fetches parameters for a freshly saved recipe. Best-effort:
// failures are logged and the save stands.
func enrichRecipe(ctx context.Context, store *session.Store, client gen.Client, saved *recipe.SavedRecipe) {
	params, err := client.Parameters(ctx, saved.BeatRecipe)
	if err != nil {
		log.Printf("warning: parameter enrichment failed for %q: %v", saved.Title, err)
		return
	}
	store.ApplyParameters(saved.ID, params)
	saved.Parameters = params
}

// outputJSON prints v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if bgErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", bgErr.Code, bgErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
