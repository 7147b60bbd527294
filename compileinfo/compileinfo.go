// Package compileinfo reports which commit a gwasplot binary was built from.
package compileinfo

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

type CompileInfo struct {
	Path       string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Commit == "" {
		return fmt.Sprintf("%s %s was built with %s without version control information.", c.Path, c.Version, c.GoVersion)
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("%s %s was built with %s at commit %v (%v).%s", c.Path, c.Version, c.GoVersion, c.Commit, c.CommitTime, mod)
}

func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Path = z.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Log writes the build information through the standard logger, which goes
// to stderr.
func Log() {
	log.Println(Get())
}
