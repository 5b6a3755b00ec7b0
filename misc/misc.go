// Package misc keeps build time program identification.
package misc

// Set by linker (-ldflags "-X twc/misc.version=...").
var (
	appName = "twc"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
