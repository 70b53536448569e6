package rig

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"

	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// Station is the input for the offline studio export: a self-contained
// HTML file the user keeps on disk and opens without a network.
type Station struct {
	Recipes    []recipe.BeatRecipe
	Plugins    []plugin.Record
	Theme      string
	ExportedAt time.Time
}

// stationRecipe is a recipe prepared for the template, with the
// description rendered from markdown.
type stationRecipe struct {
	recipe.BeatRecipe
	DescriptionHTML template.HTML
}

type stationData struct {
	Recipes    []stationRecipe
	Plugins    []plugin.Record
	Dark       bool
	ExportedAt string
}

var stationTemplate = template.Must(template.New("station").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>My BeatGenius Studio Station</title>
<style>
body { background: {{if .Dark}}#050505{{else}}#f0f9ff{{end}}; color: {{if .Dark}}#ffffff{{else}}#0c4a6e{{end}}; font-family: sans-serif; margin: 0; padding: 2rem; }
.box { background: rgba(127,127,127,0.08); border: 1px solid rgba(127,127,127,0.2); border-radius: 1rem; padding: 1.5rem; margin-bottom: 1.5rem; }
h1 { text-transform: uppercase; letter-spacing: 0.1em; }
.style-tag { font-size: 0.7rem; text-transform: uppercase; letter-spacing: 0.2em; opacity: 0.6; }
.rack { display: grid; grid-template-columns: repeat(auto-fill, minmax(160px, 1fr)); gap: 0.5rem; }
.rack div { font-size: 0.7rem; padding: 0.5rem; border: 1px solid rgba(127,127,127,0.2); border-radius: 0.5rem; }
footer { margin-top: 3rem; text-align: center; opacity: 0.3; font-size: 0.6rem; letter-spacing: 0.5em; text-transform: uppercase; }
</style>
</head>
<body>
<h1>My Private Studio App</h1>
<p>This file is yours to keep. It works without internet.</p>
<section>
<h2>Your Beat Recipes</h2>
{{range .Recipes}}<div class="box">
<h3>{{.Title}}</h3>
<p class="style-tag">{{.Style}}</p>
<div>{{.DescriptionHTML}}</div>
{{range .Ingredients}}<p class="style-tag">{{.Instrument}}</p>
<ul>{{range .Processing}}<li><strong>{{.PluginName}}</strong> — {{.Purpose}}</li>{{end}}</ul>
{{end}}
{{if .Mastering}}<p class="style-tag">Mastering</p>
<ul>{{range .Mastering}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}</section>
<section>
<h2>Your Gear Rack ({{len .Plugins}} Plugins)</h2>
<div class="rack">
{{range .Plugins}}<div><strong>{{.Name}}</strong><br>{{.Vendor}}</div>
{{end}}</div>
</section>
<footer>Offline Station V1.0 / BeatGenius / {{.ExportedAt}}</footer>
</body>
</html>
`))

// WriteStation renders the offline studio HTML into dir as
// My_Studio_App.html and returns the written path.
func WriteStation(s *Station, dir string) (string, error) {
	md := goldmark.New()

	data := stationData{
		Plugins:    s.Plugins,
		Dark:       s.Theme != "coldest",
		ExportedAt: s.ExportedAt.Format("2006-01-02 15:04"),
	}
	for _, r := range s.Recipes {
		var buf bytes.Buffer
		if err := md.Convert([]byte(r.Description), &buf); err != nil {
			return "", errors.NewInternal(fmt.Errorf("failed to render description: %w", err))
		}
		data.Recipes = append(data.Recipes, stationRecipe{
			BeatRecipe:      r,
			DescriptionHTML: template.HTML(buf.String()),
		})
	}

	var out bytes.Buffer
	if err := stationTemplate.Execute(&out, data); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to render station: %w", err))
	}

	path := filepath.Join(dir, "My_Studio_App.html")
	if err := os.WriteFile(path, out.Bytes(), 0600); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to write station: %w", err))
	}
	return path, nil
}
