package listsrv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/samthor/blocktree/blocklist"
	"github.com/sirupsen/logrus"
)

// Config configures a hosted list server.
type Config struct {
	// Addr is the address to listen on.
	// If empty, looks for the PORT env var or defaults to port 8080.
	Addr string `toml:"addr"`

	// ServeAll hosts the server on all addresses (vs localhost) if Addr is unspecified.
	ServeAll bool `toml:"serve_all"`

	// SkipOriginVerify allows any hostname to connect here, not just our own.
	SkipOriginVerify bool `toml:"skip_origin_verify"`

	BlockCapacity int     `toml:"block_capacity"`
	MinLoadFactor float64 `toml:"min_load_factor"`

	// OpLimit limits the ops a single socket may send.
	// A socket is closed if it exceeds this rate; the client is told the limit on hello.
	OpLimit *LimitConfig `toml:"op_limit"`
}

// DefaultConfig returns the Config used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		OpLimit: &LimitConfig{Burst: 100, Rate: 50},
	}
}

// ListOptions returns the options used to create each hosted list.
// Out-of-range values are clamped by blocklist.
func (c *Config) ListOptions() *blocklist.Options {
	return &blocklist.Options{
		BlockCapacity: c.BlockCapacity,
		MinLoadFactor: c.MinLoadFactor,
	}
}

// ParseConfig parses TOML over the defaults.
func ParseConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return c, nil
}

// LoadConfig reads TOML config from path.
// A missing file is not an error and gives DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	} else if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// WatchConfig calls fn with freshly loaded config each time the file at path is written or created.
// Files that fail to parse are logged and skipped.
// This blocks until the context is done or the watcher fails.
func WatchConfig(ctx context.Context, path string, fn func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// watch the dir, as editors often replace the file rather than write it
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}

			c, err := LoadConfig(path)
			if err != nil {
				Log.WithFields(logrus.Fields{"path": path}).WithError(err).Warn("could not reload config")
				continue
			}
			Log.WithFields(logrus.Fields{"path": path}).Info("reloaded config")
			fn(c)
		}
	}
}
