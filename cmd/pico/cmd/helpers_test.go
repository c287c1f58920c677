package cmd

import (
	"os"
	"path/filepath"

	"github.com/go-drift/pico/pkg/config"
)

func writeConfig(dir, content string) error {
	return os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644)
}
