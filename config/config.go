// Package config loads Megam client settings from a file and MEGAM_* environment
// variables, and keeps them current when the file changes.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: api_key is read from MEGAM_API_KEY.
const EnvPrefix = "MEGAM"

const reloadDebounce = 100 * time.Millisecond

// Config holds a decoded value of T and, unless built WithoutWatch, reloads it
// when the backing file changes.
type Config[T any] struct {
	v        *viper.Viper
	path     string
	validate func(T) error
	logger   hclog.Logger
	watch    bool

	mu       sync.RWMutex
	value    T
	watchers []func(old, new T)
}

type Option[T any] func(*Config[T])

// WithDefaults seeds default values. Keys with a default also become
// overridable from the environment once WithEnv is applied.
func WithDefaults[T any](defaults map[string]any) Option[T] {
	return func(c *Config[T]) {
		for k, v := range defaults {
			c.v.SetDefault(k, v)
		}
	}
}

// WithEnv binds environment variables named PREFIX_KEY.
func WithEnv[T any](prefix string) Option[T] {
	return func(c *Config[T]) {
		c.v.SetEnvPrefix(prefix)
		c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		c.v.AutomaticEnv()
	}
}

// WithValidator rejects values at load time and on reload. A rejected reload
// keeps the previous value.
func WithValidator[T any](fn func(T) error) Option[T] {
	return func(c *Config[T]) { c.validate = fn }
}

func WithLogger[T any](l hclog.Logger) Option[T] {
	return func(c *Config[T]) { c.logger = l }
}

// WithoutWatch loads once and never reloads.
func WithoutWatch[T any]() Option[T] {
	return func(c *Config[T]) { c.watch = false }
}

// Load reads path, decodes it into T and starts watching the file.
func Load[T any](path string, opts ...Option[T]) (*Config[T], error) {
	c := &Config[T]{
		v:      viper.New(),
		path:   path,
		logger: hclog.NewNullLogger(),
		watch:  true,
	}
	c.v.SetConfigFile(path)
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	val, err := c.read()
	if err != nil {
		return nil, err
	}
	c.value = val

	if c.watch {
		c.startWatch()
	}
	return c, nil
}

// Get returns a deep copy of the current value.
func (c *Config[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deepCopy(c.value)
}

// OnChange registers a callback run after a reload produced a different value.
func (c *Config[T]) OnChange(callback func(old, new T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchers = append(c.watchers, callback)
}

func Changed[T any](old, new T) bool {
	return !reflect.DeepEqual(old, new)
}

func deepCopy[T any](src T) T {
	var dst T
	data, _ := json.Marshal(src)
	_ = json.Unmarshal(data, &dst)
	return dst
}

func (c *Config[T]) read() (T, error) {
	var zero T
	if err := c.v.ReadInConfig(); err != nil {
		return zero, fmt.Errorf("read %s: %w", c.path, err)
	}
	var val T
	if err := c.v.Unmarshal(&val); err != nil {
		return zero, fmt.Errorf("decode %s: %w", c.path, err)
	}
	if c.validate != nil {
		if err := c.validate(val); err != nil {
			return zero, fmt.Errorf("invalid %s: %w", c.path, err)
		}
	}
	return val, nil
}

func (c *Config[T]) startWatch() {
	var (
		timer   *time.Timer
		timerMu sync.Mutex
	)
	c.v.OnConfigChange(func(ev fsnotify.Event) {
		c.logger.Trace("config file event", "path", ev.Name, "op", ev.Op.String())
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(reloadDebounce, c.handleConfigChange)
	})
	c.v.WatchConfig()
}

func (c *Config[T]) handleConfigChange() {
	old := c.Get()

	updated, watchers, err := c.reload()
	if err != nil {
		c.logger.Warn("config reload rejected, keeping previous value", "error", err)
		return
	}
	if !Changed(old, updated) {
		return
	}
	c.logger.Info("config reloaded", "path", c.path)
	for _, cb := range watchers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("config change callback panicked", "panic", r)
				}
			}()
			cb(old, updated)
		}()
	}
}

func (c *Config[T]) reload() (T, []func(old, new T), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	val, err := c.read()
	if err != nil {
		var zero T
		return zero, nil, err
	}
	c.value = val

	watchers := make([]func(old, new T), len(c.watchers))
	copy(watchers, c.watchers)
	return deepCopy(val), watchers, nil
}
