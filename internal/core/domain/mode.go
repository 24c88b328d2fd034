package domain

// Mode selects between a development build (source maps, readable markup,
// watch and live reload) and a production build.
type Mode uint8

const (
	// ModeDevelopment is the default mode.
	ModeDevelopment Mode = iota
	// ModeProduction is selected by the --production flag.
	ModeProduction
)

// ModeFromFlag derives the build mode from the --production flag.
func ModeFromFlag(production bool) Mode {
	if production {
		return ModeProduction
	}
	return ModeDevelopment
}

// IsProduction reports whether m is ModeProduction.
func (m Mode) IsProduction() bool {
	return m == ModeProduction
}

// Target returns the graph target executed in this mode.
func (m Mode) Target() string {
	if m.IsProduction() {
		return TargetBuild
	}
	return TargetDev
}

func (m Mode) String() string {
	if m.IsProduction() {
		return "production"
	}
	return "development"
}
