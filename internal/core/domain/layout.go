package domain

const (
	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "kiln.yaml"

	// LockFileName is the lock file held in the project root while kiln runs.
	LockFileName = ".kiln.lock"

	// SourceMapExt is appended to an output path to name its source map.
	SourceMapExt = ".map"

	// LiveReloadPrefix is the URL prefix reserved for live-reload endpoints.
	LiveReloadPrefix = "/__kiln/"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
