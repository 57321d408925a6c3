// Package config defines the JSON-serializable configuration model for the
// analytics run. It is intentionally small, explicit, and dependency-free so
// a run description can be loaded from disk and passed through the program
// without additional glue code.
//
// There are no command-line flags and no environment variables: a run is a
// single invocation over implicit default input locations. An optional
// spendstats.json next to the binary overrides the defaults when present.
//
// Example:
//
//	{
//	  "products_path":  "data/products.csv",
//	  "purchases_path": "data/purchases.csv",
//	  "users_path":     "data/users.csv",
//	  "age_min": 18,
//	  "age_max": 25,
//	  "top_n": 3
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is the implicit location of the optional config file.
const DefaultPath = "spendstats.json"

// Config describes one analytics run.
type Config struct {
	// Input table locations (delimited text with a header row).
	ProductsPath  string `json:"products_path"`
	PurchasesPath string `json:"purchases_path"`
	UsersPath     string `json:"users_path"`

	// Delimiter is the field separator; first rune is used. Default ",".
	Delimiter string `json:"delimiter,omitempty"`

	// AgeMin and AgeMax bound the age band, both inclusive.
	AgeMin int64 `json:"age_min"`
	AgeMax int64 `json:"age_max"`

	// TopN is how many ranked categories the final table keeps.
	TopN int `json:"top_n"`

	// DedupePurchases drops repeated purchase_id rows (keep-first) before
	// the joins. Off by default; meant for feeds that redeliver events.
	DedupePurchases bool `json:"dedupe_purchases,omitempty"`
}

// Default returns the built-in run configuration: the three CSVs in the
// working directory, the 18-25 age band, and a top-3 ranking.
func Default() Config {
	return Config{
		ProductsPath:  "products.csv",
		PurchasesPath: "purchases.csv",
		UsersPath:     "users.csv",
		Delimiter:     ",",
		AgeMin:        18,
		AgeMax:        25,
		TopN:          3,
	}
}

// Load reads a config file and overlays it on the defaults. A missing file
// is not an error: the defaults are returned unchanged. A present but
// undecodable file is an error, so a typo never silently reverts a run to
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Comma returns the configured delimiter as a rune, defaulting to ','.
func (c Config) Comma() rune {
	if c.Delimiter == "" {
		return ','
	}
	return []rune(c.Delimiter)[0]
}
