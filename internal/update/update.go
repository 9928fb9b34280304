// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package update checks for new ultivm releases.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	// CheckInterval is how long a check result is cached.
	CheckInterval = 24 * time.Hour

	cacheFileName  = "update_check.json"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
)

var (
	// ErrUnknownVersion is returned if the running version is not a semantic
	// version, like for development builds.
	ErrUnknownVersion = errors.New("running version is not a release")

	// ErrInvalidRelease is returned if the latest release has no semantic
	// version tag.
	ErrInvalidRelease = errors.New("release tag is not a semantic version")
)

// Status is the result of an update check.
type Status struct {
	Available      bool
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
	CheckedAt      time.Time
}

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

type cachedRelease struct {
	LatestVersion string    `json:"latest_version"`
	ReleaseURL    string    `json:"release_url"`
	CheckedAt     time.Time `json:"checked_at"`
}

// Checker compares the running version with the latest release.
type Checker struct {
	// URL of a GitHub compatible latest release endpoint.
	URL string

	// CurrentVersion is the running version.
	CurrentVersion string

	// CacheDir the check result is cached in. Caching is disabled if empty.
	CacheDir string

	// Client used for requests. A client with a short timeout is used if nil.
	Client *http.Client

	now func() time.Time
}

// DefaultCacheDir returns the ultivm directory in the user's cache directory.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("user cache dir: %w", err)
	}

	return filepath.Join(dir, "ultivm"), nil
}

// Check returns the update [Status]. A cached result is used if it is not
// older than [CheckInterval].
func (c *Checker) Check(ctx context.Context) (*Status, error) {
	current := canonical(c.CurrentVersion)
	if !semver.IsValid(current) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVersion, c.CurrentVersion)
	}

	cached, err := c.loadCache()
	if err == nil && c.timeNow().Sub(cached.CheckedAt) < CheckInterval {
		slog.Debug("Using cached update check",
			slog.Time("checked_at", cached.CheckedAt))

		return c.status(current, cached), nil
	}

	rel, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	latest := canonical(rel.TagName)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRelease, rel.TagName)
	}

	cached = &cachedRelease{
		LatestVersion: latest,
		ReleaseURL:    rel.HTMLURL,
		CheckedAt:     c.timeNow(),
	}

	err = c.saveCache(cached)
	if err != nil {
		slog.Debug("Failed to save update check cache", slog.Any("error", err))
	}

	return c.status(current, cached), nil
}

func (c *Checker) status(current string, cached *cachedRelease) *Status {
	return &Status{
		Available:      semver.Compare(cached.LatestVersion, current) > 0,
		CurrentVersion: current,
		LatestVersion:  cached.LatestVersion,
		ReleaseURL:     cached.ReleaseURL,
		CheckedAt:      cached.CheckedAt,
	}
}

func (c *Checker) fetch(ctx context.Context) (*release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "ultivm/"+c.CurrentVersion)

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch release: unexpected status: %s", resp.Status)
	}

	var rel release

	err = json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&rel)
	if err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	return &rel, nil
}

func (c *Checker) cachePath() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

func (c *Checker) loadCache() (*cachedRelease, error) {
	if c.CacheDir == "" {
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(c.cachePath())
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var cached cachedRelease

	err = json.Unmarshal(data, &cached)
	if err != nil {
		return nil, fmt.Errorf("decode cache: %w", err)
	}

	return &cached, nil
}

func (c *Checker) saveCache(cached *cachedRelease) error {
	if c.CacheDir == "" {
		return nil
	}

	err := os.MkdirAll(c.CacheDir, 0o755)
	if err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	err = os.WriteFile(c.cachePath(), data, 0o644)
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}

	return nil
}

func (c *Checker) timeNow() time.Time {
	if c.now != nil {
		return c.now()
	}

	return time.Now()
}

func canonical(version string) string {
	if version != "" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}

	return semver.Canonical(version)
}
