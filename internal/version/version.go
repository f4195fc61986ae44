package version

// Set with -ldflags "-X github.com/Emyrk/calltree/internal/version.GitTag=..."
var (
	GitTag    = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
