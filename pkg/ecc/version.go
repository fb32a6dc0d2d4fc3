package ecc

// Set at build time with -ldflags "-X github.com/coinbase/cb-ecc-go/pkg/ecc.Version=...".
var (
	Version = "v0.0.0-in-progress"
	Commit  = "unknown"
)

// BuildVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func BuildVersion() string {
	return Version
}

// BuildCommit returns the commit the binary was built from, or "unknown".
func BuildCommit() string {
	return Commit
}
