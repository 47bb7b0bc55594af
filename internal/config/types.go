// types.go
package config

// Raw config loaded from YAML. Pointer fields distinguish "unset" from zero
// so an override file can set a value back to 0.
type RawConfig struct {
	Version string        `yaml:"version"`
	Draw    CostConfig    `yaml:"draw"`
	Craft   CostConfig    `yaml:"craft"`
	Reveal  RevealConfig  `yaml:"reveal"`
	Catalog CatalogConfig `yaml:"catalog"`
	Store   StoreConfig   `yaml:"store"`
	Server  ServerConfig  `yaml:"server"`
	Wallet  WalletConfig  `yaml:"wallet"`
	Notes   string        `yaml:"notes,omitempty"`
}

type CostConfig struct {
	Cost *int64 `yaml:"cost"`
}

type RevealConfig struct {
	DurationMS *int `yaml:"duration_ms"`
}

type CatalogConfig struct {
	SeedPath string      `yaml:"seed_path"`
	Quotas   map[int]int `yaml:"quotas,omitempty"` // tier -> daily pool size
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`
}

type WalletConfig struct {
	StartingBalance *int64 `yaml:"starting_balance"`
}
