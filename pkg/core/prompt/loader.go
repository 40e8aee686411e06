package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFromDirectory walks baseDir recursively and registers every .json
// prompt file found. Expected layout:
//
//	baseDir/
//	  advisory/
//	    snapshot_review.json
//	    recommendations.json
func LoadFromDirectory(baseDir string) error {
	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		return fmt.Errorf("prompt directory not found: %s", baseDir)
	}

	registry := Get()
	loaded := 0

	err := filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var t Template
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if t.ID == "" {
			return fmt.Errorf("prompt file %s has no id", path)
		}

		registry.Register(&t)
		loaded++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("[prompt] Loaded %d prompts from %s\n", loaded, baseDir)
	return nil
}
