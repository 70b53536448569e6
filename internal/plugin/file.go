package plugin

import (
	"os"

	"github.com/coldestconcept/beatgenius/internal/errors"
)

// ParseFile reads a plugin listing from disk and feeds it through Parse.
// A read failure is an IO_ERROR, distinct from the PARSE_ERROR Parse
// returns for content that yields no records. The file extension is not
// checked; only the content shape matters.
func ParseFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO(path, err)
	}
	return Parse(string(data))
}
