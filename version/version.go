package version

import "runtime/debug"

// You can set the version at build time using something like:
// go build -ldflags "-X github.com/vsariola/sceneline/version.Version=$(git describe --dirty)"

var Version string

// Hash is the short VCS revision the binary was built from, with a -dirty
// suffix for modified trees; empty when the build carries no VCS info.
var Hash = func() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return revision(info.Settings)
	}
	return ""
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if Hash != "" {
		return Hash
	}
	return "devel"
}()

func revision(settings []debug.BuildSetting) string {
	modified := false
	hash := ""
	for _, s := range settings {
		switch s.Key {
		case "vcs.modified":
			modified = s.Value == "true"
		case "vcs.revision":
			hash = s.Value[:min(7, len(s.Value))]
		}
	}
	if hash != "" && modified {
		return hash + "-dirty"
	}
	return hash
}
