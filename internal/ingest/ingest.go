// Package ingest reads harvest documents — the JSON files upstream
// summarizers produce — into the normalized summary shape the aggregator
// consumes.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/clearlydefined/reconciler/internal/aggregate"
	"github.com/clearlydefined/reconciler/internal/model"
)

// ReadHarvest loads a harvest document of the shape
// {tool: {version: partialDefinition}} from a JSON file.
//
// The reader is deliberately tolerant: unknown and extra fields inside a
// summary are ignored, and a summary entry whose body is malformed is
// skipped rather than failing the whole document. Only an unreadable file or
// a document whose outer shape is not {tool: {version: ...}} is an error.
func ReadHarvest(path string) (aggregate.Summaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read harvest file %q: %w", path, err)
	}
	return ParseHarvest(data)
}

// ParseHarvest decodes harvest document bytes. See ReadHarvest.
func ParseHarvest(data []byte) (aggregate.Summaries, error) {
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("harvest document is not {tool: {version: summary}} shaped: %w", err)
	}

	summaries := aggregate.Summaries{}
	for tool, versions := range raw {
		for version, body := range versions {
			var def model.Definition
			if err := json.Unmarshal(body, &def); err != nil {
				// Malformed summary body: skip it, the other
				// tools' data is still usable.
				continue
			}
			if summaries[tool] == nil {
				summaries[tool] = map[string]*model.Definition{}
			}
			summaries[tool][version] = &def
		}
	}
	return summaries, nil
}
