// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/user"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errBaseURLInvalid               = errors.New("site.baseUrl is not a valid absolute URL")
	errContentDirMissing            = errors.New("content.dir does not exist")
	errIndexPostsNotPositive        = errors.New("content.indexPosts must be a positive integer")
	errFeedPostsNotPositive         = errors.New("content.feedPosts must be a positive integer")
	errPageCacheSizeNotPositive     = errors.New("pageCache.size must be a positive integer")
	errLimiterRPSNotPositive        = errors.New("limiter.requestsPerSecond must be positive when the limiter is enabled")
	errLimiterBurstNotPositive      = errors.New("limiter.burst must be positive when the limiter is enabled")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)
)

// validateAndSet validates the server configuration and populates some fields.
func (cfg *ServerConfig) validateAndSet() error {
	// Handle listener configuration
	if cfg.Basic.UnixSocket != "" {
		if err := cfg.validateUnixSocket(); err != nil {
			return err
		}
	} else {
		// Set TCP defaults
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = "8484"
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}
	}

	// The base URL must be absolute; the feed builds absolute entry links from it.
	parsedBaseURL, err := url.Parse(cfg.Site.RawBaseURL)
	if err != nil || !parsedBaseURL.IsAbs() || parsedBaseURL.Host == "" {
		return fmt.Errorf("%w: %q", errBaseURLInvalid, cfg.Site.RawBaseURL)
	}

	cfg.Site.BaseURL = *parsedBaseURL

	// The content directory must exist; a blog without content is a misconfiguration.
	if info, err := os.Stat(cfg.Content.Dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %q", errContentDirMissing, cfg.Content.Dir)
	}

	if cfg.Content.IndexPosts <= 0 {
		return errIndexPostsNotPositive
	}

	if cfg.Content.FeedPosts <= 0 {
		return errFeedPostsNotPositive
	}

	if cfg.PageCache.Enabled && cfg.PageCache.Size <= 0 {
		return errPageCacheSizeNotPositive
	}

	if cfg.Limiter.Enabled {
		if cfg.Limiter.RequestsPerSecond <= 0 {
			return errLimiterRPSNotPositive
		}

		if cfg.Limiter.Burst <= 0 {
			return errLimiterBurstNotPositive
		}
	}

	return nil
}

// validateUnixSocket checks the unix socket listener settings and resolves
// the raw permission string into an os.FileMode.
func (cfg *ServerConfig) validateUnixSocket() error {
	if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
		return errUnixSocketWithHostPort
	}

	// Handle unix socket permissions
	switch {
	case cfg.Basic.RawUnixSocketPermissions == "":
		cfg.Basic.UnixSocketPermissions = 0o666
	case fileModeOctalRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
		rawModeUint64, _ := strconv.ParseUint(cfg.Basic.RawUnixSocketPermissions, 8, 32)

		cfg.Basic.UnixSocketPermissions = os.FileMode(rawModeUint64)
	case fileModeStringRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
		mode := os.FileMode(0)

		for i, c := range cfg.Basic.RawUnixSocketPermissions {
			// If permission bit is set
			if c != '-' {
				// Set i-th bit from the end
				const bitsInByte = 8

				mode |= 1 << (bitsInByte - i)
			}
		}

		cfg.Basic.UnixSocketPermissions = mode
	default:
		return errUnixSocketInvalidPermissions
	}

	// Check if user is valid
	if cfg.Basic.UnixSocketUser != "" {
		if digitsRegexp.MatchString(cfg.Basic.UnixSocketUser) {
			if _, err := user.LookupId(cfg.Basic.UnixSocketUser); err != nil {
				return errUnixSocketUserDoesNotExist
			}
		} else {
			if _, err := user.Lookup(cfg.Basic.UnixSocketUser); err != nil {
				return errUnixSocketUserDoesNotExist
			}
		}
	}

	// Check if group is valid
	if cfg.Basic.UnixSocketGroup != "" {
		if digitsRegexp.MatchString(cfg.Basic.UnixSocketGroup) {
			if _, err := user.LookupGroupId(cfg.Basic.UnixSocketGroup); err != nil {
				return errUnixSocketGroupDoesNotExist
			}
		} else {
			if _, err := user.LookupGroup(cfg.Basic.UnixSocketGroup); err != nil {
				return errUnixSocketGroupDoesNotExist
			}
		}
	}

	return nil
}
