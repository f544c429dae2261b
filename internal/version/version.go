// Package version carries build information and checks client compatibility
// against the backend's advertised minimum client version.
package version

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/notelab/notelab-cli/internal/api"
	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

// Build information, injected via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// BackendVersion is the backend's version advertisement.
type BackendVersion struct {
	Version              string `json:"version"`
	MinimumClientVersion string `json:"minimumClientVersion"`
}

// Compatibility is the result of a client/backend version check.
type Compatibility struct {
	Backend       BackendVersion
	Client        string
	Compatible    bool
	UpdateMessage string
}

// String formats the build information for display.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

// Check fetches the backend's version advertisement and compares this
// client against the minimum it requires. Development builds ("dev") are
// always treated as compatible.
func Check(ctx context.Context, client *api.Client) (*Compatibility, error) {
	var backend BackendVersion
	if err := client.Get(ctx, "/version", &backend); err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch backend version")
	}

	compat := &Compatibility{Backend: backend, Client: Version, Compatible: true}

	if Version == "dev" || backend.MinimumClientVersion == "" {
		return compat, nil
	}

	current, err := semver.NewVersion(Version)
	if err != nil {
		return nil, appErrors.ValidationError("client version", err.Error())
	}
	minimum, err := semver.NewVersion(backend.MinimumClientVersion)
	if err != nil {
		return nil, appErrors.ValidationError("minimum client version", err.Error())
	}

	if current.LessThan(minimum) {
		compat.Compatible = false
		compat.UpdateMessage = fmt.Sprintf(
			"client %s is older than the minimum supported version %s; please upgrade",
			current, minimum)
	}

	return compat, nil
}

// IsNewer reports whether candidate is a strictly newer release than
// current. Unparseable versions compare as not newer.
func IsNewer(current, candidate string) bool {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	cand, err := semver.NewVersion(candidate)
	if err != nil {
		return false
	}
	return cand.GreaterThan(cur)
}
