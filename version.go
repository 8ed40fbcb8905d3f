package solpay

import "fmt"

// Semantic version of the solpay framework and its modules.
const (
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
	// VersionPre is empty for tagged releases.
	VersionPre = "dev"
)

// GitCommit is set at build time with
//
//	-ldflags "-X github.com/solpay/solpay.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit string

// Version returns the semantic version followed by the git commit when one
// was set at build time. Info reports it to tendermint.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
	if VersionPre != "" {
		v += "-" + VersionPre
	}
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
