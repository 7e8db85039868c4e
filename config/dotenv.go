package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const defaultDotEnvDepth = 6

// LoadDotEnvUp loads the first .env found in the working directory or up to
// maxDepth parents. A missing file is not an error.
func LoadDotEnvUp(maxDepth int) {
	if maxDepth <= 0 {
		maxDepth = defaultDotEnvDepth
	}

	dir, err := os.Getwd()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	for i := 0; i <= maxDepth; i++ {
		p := filepath.Join(dir, ".env")
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
