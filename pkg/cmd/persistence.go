package cmd

import (
	"strings"

	"github.com/canvasflow/canvasflow/pkg/persistence"
	"github.com/canvasflow/canvasflow/pkg/persistence/file"
)

var supportedPersistenceProviders = []string{"file"}

// NewPersistence selects a storage backend from the data URL. Only the
// file backend exists today; everything else falls back to it.
func NewPersistence(dataURL string) persistence.Persistence {
	provider := parsePersistenceProvider(dataURL)

	switch provider {
	default:
		return file.NewPersistence(dataURL)
	}
}

func parsePersistenceProvider(dataURL string) string {
	parts := strings.Split(dataURL, "://")

	provider := parts[0]
	for _, supported := range supportedPersistenceProviders {
		if provider == supported {
			return provider
		}
	}

	return "file"
}
