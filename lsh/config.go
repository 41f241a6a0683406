package lsh

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var similarityNames = map[SimilarityKind]string{
	Jaccard: "jaccard",
	Cosine:  "cosine",
}

func (k SimilarityKind) String() string {
	if name, ok := similarityNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseSimilarity converts the name of the measure into SimilarityKind
func ParseSimilarity(name string) (SimilarityKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, n := range similarityNames {
		if n == name {
			return kind, nil
		}
	}
	return UnknownSimilarity, fmt.Errorf("%w: %q", ErrUnknownSimilarity, name)
}

// MarshalText implements encoding.TextMarshaler
func (k SimilarityKind) MarshalText() ([]byte, error) {
	if _, ok := similarityNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSimilarity, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *SimilarityKind) UnmarshalText(text []byte) error {
	kind, err := ParseSimilarity(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// UnmarshalYAML reads similarity kind by its name
func (k *SimilarityKind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	return k.UnmarshalText([]byte(name))
}

// WithDefaults returns copy of the config with empty fields filled in
func (c Config) WithDefaults() Config {
	if c.Bands == 0 {
		c.Bands = DefaultBands
	}
	return c
}

// Validate checks dimensions, band layout and the similarity kind
func (c Config) Validate() error {
	if err := checkDims(c.FeatDim, c.SigDim); err != nil {
		return err
	}
	if c.Bands <= 0 {
		return fmt.Errorf("%w: bands=%d must be positive", ErrInvalidBandConfig, c.Bands)
	}
	if c.SigDim%c.Bands != 0 {
		return fmt.Errorf("%w: sigDim=%d is not divisible by bands=%d", ErrInvalidBandConfig, c.SigDim, c.Bands)
	}
	if _, ok := hasherBuilders[c.Similarity]; !ok {
		return fmt.Errorf("%w: %v", ErrUnknownSimilarity, c.Similarity)
	}
	return nil
}

// LoadConfig reads yaml config file and applies environment overrides on top of it
func LoadConfig(path string) (Config, error) {
	var config Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err = yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	if err = ApplyEnv(&config); err != nil {
		return Config{}, err
	}
	config = config.WithDefaults()
	if err = config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// ApplyEnv overrides config fields with the non-empty environment variables:
// LSH_FEAT_DIM, LSH_SIG_DIM, LSH_BANDS, LSH_SIMILARITY, LSH_SEED
func ApplyEnv(config *Config) error {
	intVars := map[string]*int{
		"LSH_FEAT_DIM": &config.FeatDim,
		"LSH_SIG_DIM":  &config.SigDim,
		"LSH_BANDS":    &config.Bands,
	}
	for key, field := range intVars {
		raw := os.Getenv(key)
		if len(raw) == 0 {
			continue
		}
		val, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
		*field = val
	}
	if raw := os.Getenv("LSH_SEED"); len(raw) > 0 {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("env LSH_SEED: %w", err)
		}
		config.Seed = seed
	}
	if raw := os.Getenv("LSH_SIMILARITY"); len(raw) > 0 {
		kind, err := ParseSimilarity(raw)
		if err != nil {
			return fmt.Errorf("env LSH_SIMILARITY: %w", err)
		}
		config.Similarity = kind
	}
	return nil
}
