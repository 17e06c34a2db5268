package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/lmcintyre/AnimAssist/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/lmcintyre/AnimAssist/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/lmcintyre/AnimAssist/internal/version.Date={{.Date}}
)
