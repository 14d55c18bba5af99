// Package config loads client settings from a TOML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gfx.cafe/util/go/gun"

	"gfx.cafe/gfx/mcwire/lib/auth/credentials"
	"gfx.cafe/gfx/mcwire/lib/auth/sessionserver"
	"gfx.cafe/gfx/mcwire/lib/conn"
)

var (
	ErrNoUsername = errors.New("login username is required")
	ErrBadProfile = errors.New("invalid profile uuid")
)

type Config struct {
	Server     Server     `toml:"server"`
	Login      Login      `toml:"login"`
	Connection Connection `toml:"connection"`
	Log        Log        `toml:"log"`
}

type Server struct {
	// Address is host:port; the port defaults to 25565.
	Address string `toml:"address"`
}

type Login struct {
	Username    string `toml:"username"`
	Profile     string `toml:"profile"`
	AccessToken string `toml:"access_token"`
	// Online joins the session on the session server during encryption.
	Online        bool   `toml:"online"`
	SessionServer string `toml:"session_server"`
}

type Connection struct {
	QueueSize      int           `toml:"queue_size"`
	ReactorTimeout time.Duration `toml:"reactor_timeout"`
	DialTimeout    time.Duration `toml:"dial_timeout"`
}

type Log struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Env holds the environment overrides. Set values win over the file.
type Env struct {
	Address       string `env:"MCWIRE_ADDRESS"`
	Username      string `env:"MCWIRE_USERNAME"`
	Profile       string `env:"MCWIRE_PROFILE"`
	AccessToken   string `env:"MCWIRE_ACCESS_TOKEN"`
	SessionServer string `env:"MCWIRE_SESSION_SERVER"`
	LogLevel      string `env:"MCWIRE_LOG_LEVEL"`
}

func Default() Config {
	return Config{
		Connection: Connection{
			QueueSize:      conn.DefaultQueueSize,
			ReactorTimeout: conn.DefaultReactorTimeout,
			DialTimeout:    10 * time.Second,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Parse decodes a TOML document over the defaults.
func Parse(data string) (Config, error) {
	c := Default()
	if _, err := toml.Decode(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads path, when given, then applies the environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if c, err = Parse(string(b)); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	var env Env
	gun.Load(&env)
	c.Apply(env)
	return c, nil
}

func (T *Config) Apply(env Env) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&T.Server.Address, env.Address)
	set(&T.Login.Username, env.Username)
	set(&T.Login.Profile, env.Profile)
	set(&T.Login.AccessToken, env.AccessToken)
	set(&T.Login.SessionServer, env.SessionServer)
	set(&T.Log.Level, env.LogLevel)
}

func (T *Login) ProfileUUID() (uuid.UUID, error) {
	if T.Profile == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(T.Profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrBadProfile, err)
	}
	return id, nil
}

func (T *Log) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(T.Level)
	if err != nil {
		return nil, err
	}
	var zc zap.Config
	if T.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Options builds connection options. Online logins get static credentials
// and a session server joiner.
func (T *Config) Options(logger *zap.Logger) (conn.Options, error) {
	options := conn.Options{
		QueueSize:      T.Connection.QueueSize,
		ReactorTimeout: T.Connection.ReactorTimeout,
		Logger:         logger,
	}
	if !T.Login.Online {
		return options, nil
	}

	profile, err := T.Login.ProfileUUID()
	if err != nil {
		return conn.Options{}, err
	}
	options.Auth = credentials.Static{
		AccessToken: T.Login.AccessToken,
		Profile:     profile,
		Username:    T.Login.Username,
	}
	joiner := sessionserver.NewClient()
	if T.Login.SessionServer != "" {
		joiner.URL = T.Login.SessionServer
	}
	options.Joiner = joiner
	return options, nil
}
