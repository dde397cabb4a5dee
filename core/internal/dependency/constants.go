package dependency

const (
	// ManifestFile is the manifest name inside the working-copy root.
	ManifestFile = ".gitpackages"

	// Section is the manifest section that holds one record per dependency.
	Section = "dependency"

	DefaultBranch = "master"
	DefaultCommit = "HEAD"
)

// Record variables.
const (
	VarURL    = "url"
	VarPath   = "path"
	VarBranch = "branch"
	VarCommit = "commit"
)
