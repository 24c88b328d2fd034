package domain

import "go.trai.ch/zerr"

// Category identifies a family of source assets that share a glob, a destination
// and a transformation pipeline.
type Category string

const (
	// CategoryStyles is the SCSS stylesheet category.
	CategoryStyles Category = "styles"
	// CategoryScripts is the JavaScript category.
	CategoryScripts Category = "scripts"
	// CategoryMarkup is the HTML page category.
	CategoryMarkup Category = "markup"
	// CategoryImages is the raster and vector image category.
	CategoryImages Category = "images"
	// CategoryFonts is the web font category.
	CategoryFonts Category = "fonts"
)

// Categories returns every known category in build order.
func Categories() []Category {
	return []Category{
		CategoryStyles,
		CategoryScripts,
		CategoryMarkup,
		CategoryImages,
		CategoryFonts,
	}
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a configuration key into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", zerr.With(ErrUnknownCategory, "category", s)
}

// Broadcasts reports whether a completed run of this category is pushed to
// live-reload clients. Images and fonts are picked up on the next page load.
func (c Category) Broadcasts() bool {
	switch c {
	case CategoryStyles, CategoryScripts, CategoryMarkup:
		return true
	default:
		return false
	}
}
