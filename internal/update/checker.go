// Package update checks GitHub releases for a newer published version.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const (
	latestReleaseURL    = "https://api.github.com/repos/promptpack/promptpack/releases/latest"
	requestTimeout      = 5 * time.Second
	updateCommandString = "go install github.com/promptpack/promptpack/cmd/promptpack@latest"
)

// Info describes an available newer release.
type Info struct {
	CurrentVersion string
	LatestVersion  string
	UpdateCommand  string
}

// Checker queries the release feed. A nil HTTPClient uses a default client
// with the package timeout.
type Checker struct {
	httpClient *http.Client
	releaseURL string
}

// NewChecker constructs a checker against the canonical release feed.
func NewChecker() *Checker {
	return &Checker{
		httpClient: &http.Client{Timeout: requestTimeout},
		releaseURL: latestReleaseURL,
	}
}

type releaseDocument struct {
	TagName string `json:"tag_name"`
}

// Check returns release info when a strictly newer version is published, nil
// when current is up to date. Network or parse failures return an error so
// callers on the silent path can drop them.
func (checker *Checker) Check(ctx context.Context, currentVersion string) (*Info, error) {
	request, requestError := http.NewRequestWithContext(ctx, http.MethodGet, checker.releaseURL, nil)
	if requestError != nil {
		return nil, requestError
	}
	request.Header.Set("Accept", "application/vnd.github+json")

	response, responseError := checker.httpClient.Do(request)
	if responseError != nil {
		return nil, responseError
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned status %d", response.StatusCode)
	}

	var release releaseDocument
	if decodeError := json.NewDecoder(response.Body).Decode(&release); decodeError != nil {
		return nil, decodeError
	}

	latest, latestError := semver.NewVersion(strings.TrimPrefix(release.TagName, "v"))
	if latestError != nil {
		return nil, fmt.Errorf("parse latest version %q: %w", release.TagName, latestError)
	}
	current, currentError := semver.NewVersion(strings.TrimPrefix(currentVersion, "v"))
	if currentError != nil {
		// Development builds report non-semver versions; treat as current.
		return nil, nil
	}

	if !latest.GreaterThan(current) {
		return nil, nil
	}
	return &Info{
		CurrentVersion: current.String(),
		LatestVersion:  latest.String(),
		UpdateCommand:  updateCommandString,
	}, nil
}
