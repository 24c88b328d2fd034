package sass

import (
	"github.com/bep/godartsass/v2"
	"go.trai.ch/kiln/internal/core/domain"
)

// LocateExported exposes locate for testing.
func LocateExported(unit domain.Asset, unitURL string, e godartsass.SassError) error {
	return locate(unit, unitURL, e)
}

// FileURLExported exposes fileURL for testing.
func FileURLExported(path string) string {
	return fileURL(path)
}
