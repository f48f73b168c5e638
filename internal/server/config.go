package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroom/holdem/internal/game"
)

// ServerConfig is the complete server configuration, loaded from HCL.
type ServerConfig struct {
	Server *ServerSettings `hcl:"server,block"`
	Game   *GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`

	// AllowedOrigin restricts websocket upgrades to browsers served from
	// this origin. Empty admits any origin.
	AllowedOrigin string `hcl:"allowed_origin,optional"`
}

// GameSettings defines the table parameters applied to every table.
// Durations are in seconds.
type GameSettings struct {
	MaxPlayers     int `hcl:"max_players,optional"`
	SmallBlind     int `hcl:"small_blind,optional"`
	BigBlind       int `hcl:"big_blind,optional"`
	StartingStack  int `hcl:"starting_stack,optional"`
	ActionTimeout  int `hcl:"action_timeout,optional"`
	PayoutDisplay  int `hcl:"payout_display,optional"`
	InterHandDelay int `hcl:"inter_hand_delay,optional"`
	TableReap      int `hcl:"table_reap,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: &ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: &GameSettings{
			MaxPlayers:     5,
			SmallBlind:     5,
			BigBlind:       10,
			StartingStack:  1000,
			ActionTimeout:  20,
			PayoutDisplay:  3,
			InterHandDelay: 2,
			TableReap:      300,
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file. A missing
// file yields the defaults; a present file only needs to set what it
// overrides.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *ServerConfig) applyDefaults() {
	def := DefaultServerConfig()
	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Game == nil {
		c.Game = def.Game
	}

	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}

	g, dg := c.Game, def.Game
	if g.MaxPlayers == 0 {
		g.MaxPlayers = dg.MaxPlayers
	}
	if g.SmallBlind == 0 {
		g.SmallBlind = dg.SmallBlind
	}
	if g.BigBlind == 0 {
		g.BigBlind = dg.BigBlind
	}
	if g.StartingStack == 0 {
		g.StartingStack = dg.StartingStack
	}
	if g.ActionTimeout == 0 {
		g.ActionTimeout = dg.ActionTimeout
	}
	if g.PayoutDisplay == 0 {
		g.PayoutDisplay = dg.PayoutDisplay
	}
	if g.InterHandDelay == 0 {
		g.InterHandDelay = dg.InterHandDelay
	}
	if g.TableReap == 0 {
		g.TableReap = dg.TableReap
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	g := c.Game
	if g.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if g.BigBlind <= g.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if g.MaxPlayers < 2 || g.MaxPlayers > 10 {
		return fmt.Errorf("max players must be between 2 and 10, got %d", g.MaxPlayers)
	}
	if g.StartingStack < g.BigBlind {
		return fmt.Errorf("starting stack must cover at least one big blind")
	}
	if g.ActionTimeout <= 0 {
		return fmt.Errorf("action timeout must be positive")
	}
	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// TableConfig converts the game settings into table parameters.
func (c *ServerConfig) TableConfig() game.Config {
	g := c.Game
	return game.Config{
		MaxPlayers:     g.MaxPlayers,
		SmallBlind:     g.SmallBlind,
		BigBlind:       g.BigBlind,
		StartingStack:  g.StartingStack,
		ActionTimeout:  time.Duration(g.ActionTimeout) * time.Second,
		PayoutDisplay:  time.Duration(g.PayoutDisplay) * time.Second,
		InterHandDelay: time.Duration(g.InterHandDelay) * time.Second,
	}
}

// ReapInterval returns how often empty tables are collected.
func (c *ServerConfig) ReapInterval() time.Duration {
	return time.Duration(c.Game.TableReap) * time.Second
}
