package version

// overwritten by ldflags on release builds
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var FullVersion = composeVersion()

func composeVersion() string {
	ret := Version
	if Commit != "none" {
		ret += " (" + Commit + ")"
	}
	return ret
}
