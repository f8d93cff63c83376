// Package buildinfo identifies the texture packer build.
//
// Version, Commit and Date are stamped by the release build:
//
//	go build -ldflags "-X github.com/chocolatl/cocos-texture-packer/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/chocolatl/cocos-texture-packer/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/chocolatl/cocos-texture-packer/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// The same values are written into descriptors that carry generator
// metadata, so a sheet can be traced back to the build that produced it.
package buildinfo

import "fmt"

// App is the generator name recorded in descriptors.
const App = "cocos-texture-packer"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Generator returns "<app> <version>", or "<app> <version> (<commit>)" when
// the commit is known.
func Generator() string {
	if Commit == "none" || Commit == "" {
		return App + " " + Version
	}
	short := Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s %s (%s)", App, Version, short)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
