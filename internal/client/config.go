package client

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ClientConfig is the client configuration, loaded from HCL.
type ClientConfig struct {
	Server *ClientServerSettings `hcl:"server,block"`
	Player *PlayerSettings       `hcl:"player,block"`
	UI     *UISettings           `hcl:"ui,block"`
}

// ClientServerSettings points the client at a server.
type ClientServerSettings struct {
	URL string `hcl:"url,optional"`
}

// PlayerSettings holds the player identity.
type PlayerSettings struct {
	Name      string `hcl:"name,optional"`
	AvatarURL string `hcl:"avatar_url,optional"`
}

// UISettings controls client-side logging. The TUI owns the terminal, so
// logs go to a file.
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Server: &ClientServerSettings{URL: "http://localhost:8080"},
		Player: &PlayerSettings{},
		UI: &UISettings{
			LogLevel: "info",
			LogFile:  "holdem-client.log",
		},
	}
}

// LoadClientConfig loads client configuration from an HCL file; a missing
// file yields the defaults.
func LoadClientConfig(filename string) (*ClientConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultClientConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ClientConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := DefaultClientConfig()
	if config.Server == nil {
		config.Server = def.Server
	}
	if config.Player == nil {
		config.Player = def.Player
	}
	if config.UI == nil {
		config.UI = def.UI
	}
	if config.Server.URL == "" {
		config.Server.URL = def.Server.URL
	}
	if config.UI.LogLevel == "" {
		config.UI.LogLevel = def.UI.LogLevel
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = def.UI.LogFile
	}

	return &config, nil
}

// Validate validates the client configuration.
func (c *ClientConfig) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server URL is required")
	}
	if c.UI.LogFile == "" {
		return fmt.Errorf("log file is required")
	}
	return nil
}
