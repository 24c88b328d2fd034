package ports

import "go.trai.ch/kiln/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for the project containing cwd.
	// A missing config file yields the defaults rooted at cwd.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to the directory containing kiln.yaml.
	// It returns cwd itself when no config file exists.
	DiscoverRoot(cwd string) (string, error)
}
