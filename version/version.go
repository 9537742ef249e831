package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time with -ldflags "-X github.com/kbukum/restkit/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit,omitempty"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date,omitzero"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// Get returns version information from the linker flags, falling back to
// the VCS stamp embedded by the Go toolchain.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return fromBuild(Version, GitCommit, BuildTime, bi)
}

func fromBuild(version, commit, buildTime string, bi *debug.BuildInfo) Info {
	info := Info{
		Version:   version,
		GitCommit: commit,
		IsRelease: version != "dev" && !strings.Contains(version, "dirty"),
	}
	if t, err := time.Parse(time.RFC3339, buildTime); err == nil {
		info.BuildDate = t
	}
	if bi == nil {
		info.GitCommit = shortCommit(info.GitCommit)
		return info
	}

	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		case "vcs.time":
			if info.BuildDate.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildDate = t
				}
			}
		}
	}
	info.GitCommit = shortCommit(info.GitCommit)
	return info
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// Short returns the version with the abbreviated commit, e.g. "1.2.0-ab12cd3".
func (i Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	s := i.Version + "-" + i.GitCommit
	if i.IsDirty {
		s += "-dirty"
	}
	return s
}

// String returns the short version followed by the build date, if known.
func (i Info) String() string {
	if i.BuildDate.IsZero() {
		return i.Short()
	}
	return fmt.Sprintf("%s (built %s)", i.Short(), i.BuildDate.UTC().Format(time.RFC3339))
}

// UserAgent returns the User-Agent sent by API clients.
func UserAgent(product string) string {
	return product + "/" + Get().Short()
}
