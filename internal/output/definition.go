// Package output provides serializers for reconciled definitions.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/clearlydefined/reconciler/internal/model"
)

// WriteDefinition serialises a reconciled definition as indented JSON and
// writes it to the given output path. If outputPath is "-", it writes to
// stdout.
func WriteDefinition(def *model.Definition, outputPath string) error {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal definition JSON: %w", err)
	}

	if outputPath == "-" {
		_, err = os.Stdout.Write(data)
		if err == nil {
			_, err = os.Stdout.WriteString("\n")
		}
		return err
	}

	return os.WriteFile(outputPath, append(data, '\n'), 0644)
}
