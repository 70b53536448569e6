package plugin

// Record represents one installed audio plugin parsed from a rack listing.
// Records are immutable once parsed; identity is positional, so duplicate
// vendor+name pairs are kept as-is.
//
// JSON field names match the rig-bundle interchange format.
type Record struct {
	// Vendor is the plugin manufacturer (e.g., "Xfer Records")
	Vendor string `json:"vendor"`

	// Name is the plugin display name (e.g., "Serum")
	Name string `json:"name"`

	// Type is the plugin format tag (e.g., "VST3", "VST2")
	Type string `json:"type"`

	// Version is the reported version, or "N/A" for config-style sources
	Version string `json:"version"`

	// LastModified is the source's modification tag, or "Found in INI"
	LastModified string `json:"lastModified"`
}
