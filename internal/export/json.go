package export

import (
	"fmt"
	"os"

	"github.com/sadopc/desafio200/internal/challenge"
)

// ToJSON writes the full state in the same document format the importer reads.
func ToJSON(s challenge.State, path string) error {
	data, err := challenge.EncodeIndent(s)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
