package blockbuf

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultBlockBytes is the size of one block transfer in bytes.
const DefaultBlockBytes = 4096

// Config holds the channel parameters that can be loaded from a file.
type Config struct {
	// BlockBytes is the size of the on-chip buffer and of every full block
	// transfer, in bytes. It must be a multiple of the word width.
	// Default: 4096.
	BlockBytes int `json:"block_bytes"`

	// Strict records boundary violations as an error retrievable through
	// Channel.Err. Data handling is unchanged. Default: false.
	Strict bool `json:"strict"`

	// Trace asks the caller to attach a TransferLogger. Default: false.
	Trace bool `json:"trace"`
}

// DefaultConfig returns a Config with a 4KiB block.
func DefaultConfig() *Config {
	return &Config{
		BlockBytes: DefaultBlockBytes,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read block config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse block config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize block config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write block config file: %w", err)
	}

	return nil
}

// Validate checks that the block size is usable.
func (c *Config) Validate() error {
	if c.BlockBytes <= 0 {
		return fmt.Errorf("block_bytes must be > 0")
	}
	return nil
}

// ValidateFor checks that the block holds a whole number of W words.
func ValidateFor[W Word](c *Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	width := WordBytes[W]()
	if c.BlockBytes%width != 0 {
		return fmt.Errorf("block_bytes %d is not a multiple of the %d-byte word",
			c.BlockBytes, width)
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	return &Config{
		BlockBytes: c.BlockBytes,
		Strict:     c.Strict,
		Trace:      c.Trace,
	}
}
