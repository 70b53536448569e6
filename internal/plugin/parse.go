package plugin

import (
	"regexp"
	"strings"

	"github.com/coldestconcept/beatgenius/internal/errors"
)

// vendorRegex matches the first parenthesized group in a display name,
// e.g. "Serum (Xfer Records)" → "Xfer Records".
var vendorRegex = regexp.MustCompile(`\(([^)]+)\)`)

// Parse converts a raw plugin listing into records. It auto-detects the
// source format: a flat key=value configuration listing (one plugin per
// line, values comma-separated) or a delimited tabular export with an
// optional header row. Parse never panics; if no valid records come out
// it returns a PARSE_ERROR and the caller leaves its prior rack untouched.
func Parse(text string) ([]Record, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.NewParse()
	}

	lines := strings.Split(trimmed, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	var parsed []Record
	if isConfigListing(lines) {
		parsed = parseConfigListing(lines)
	} else {
		parsed = parseTabular(lines)
	}

	if len(parsed) == 0 {
		return nil, errors.NewParse()
	}
	return parsed, nil
}

// isConfigListing reports whether any line looks like a DAW config entry:
// a key=value pair whose text mentions a .dll or .vst3 binary.
func isConfigListing(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, "=") &&
			(strings.Contains(line, ".dll") || strings.Contains(line, ".vst3")) {
			return true
		}
	}
	return false
}

// parseConfigListing parses the key=value configuration format.
// Each line is "filename=field0,field1,displayName(Vendor),...".
func parseConfigListing(lines []string) []Record {
	var records []Record

	for _, line := range lines {
		if !strings.Contains(line, "=") {
			continue
		}
		filename, rest, _ := strings.Cut(line, "=")
		if rest == "" {
			continue
		}

		// The third comma-separated field is the display name; fall back
		// to the filename when it is absent or empty.
		parts := strings.Split(rest, ",")
		displayName := filename
		if len(parts) > 2 && parts[2] != "" {
			displayName = parts[2]
		}

		vendor := "Unknown"
		if m := vendorRegex.FindStringSubmatch(displayName); m != nil {
			vendor = m[1]
		}

		name, _, _ := strings.Cut(displayName, "(")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		pluginType := "VST2"
		if strings.Contains(strings.ToLower(filename), "vst3") {
			pluginType = "VST3"
		}

		records = append(records, Record{
			Vendor:       vendor,
			Name:         name,
			Type:         pluginType,
			Version:      "N/A",
			LastModified: "Found in INI",
		})
	}

	return records
}

// parseTabular parses the delimited tabular export format.
// Fields map positionally: vendor, name, type, version, lastModified.
func parseTabular(lines []string) []Record {
	start := 0
	if len(lines) > 0 && strings.Contains(strings.ToLower(lines[0]), "vendor") {
		start = 1 // header row
	}

	var records []Record
	for _, line := range lines[start:] {
		parts := splitQuoted(line)

		rec := Record{
			Vendor:       fieldOr(parts, 0, "Unknown"),
			Name:         fieldOr(parts, 1, "Unknown"),
			Type:         fieldOr(parts, 2, "Unknown"),
			Version:      fieldOr(parts, 3, "Unknown"),
			LastModified: fieldOr(parts, 4, "Unknown"),
		}
		if rec.Name == "Unknown" {
			continue
		}
		records = append(records, rec)
	}

	return records
}

// splitQuoted splits a line on commas that are not inside double-quoted
// fields, so `"Acme, Inc.","Delay Pro",VST3` keeps the embedded comma.
func splitQuoted(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// fieldOr returns parts[i] with quotes and surrounding whitespace stripped,
// or def when the field is missing or empty.
func fieldOr(parts []string, i int, def string) string {
	if i >= len(parts) {
		return def
	}
	s := strings.TrimSpace(strings.ReplaceAll(parts[i], `"`, ""))
	if s == "" {
		return def
	}
	return s
}
