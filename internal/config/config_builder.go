package config

import (
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates partially populated configs from multiple
// sources and merges them with mergo. Earlier sources win: mergo only fills
// fields the already-merged result left zero.
type configBuilder[T any] struct {
	configs []*T
	err     error
}

func newConfigBuilder[T any]() *configBuilder[T] {
	return &configBuilder[T]{
		configs: make([]*T, 0, 4),
	}
}

// with appends a config source. Sources run in the order added; a failed
// source poisons the builder and surfaces from build.
func (b *configBuilder[T]) with(source func() (*T, error)) *configBuilder[T] {
	if b.err != nil {
		return b
	}

	cfg, err := source()
	if err != nil {
		b.err = err
		return b
	}

	b.configs = append(b.configs, cfg)
	return b
}

// withJSON appends the JSON-file source. The file path is resolved from the
// sources already added (env and flags), so it must be called last.
func (b *configBuilder[T]) withJSON(parse func(string) (*T, error), pathOf func(*T) string) *configBuilder[T] {
	if b.err != nil {
		return b
	}

	var path string
	for _, cfg := range b.configs {
		if p := pathOf(cfg); p != "" {
			path = p
			break
		}
	}
	if path == "" {
		return b
	}

	cfg, err := parse(path)
	if err != nil {
		b.err = err
		return b
	}

	b.configs = append(b.configs, cfg)
	return b
}

func (b *configBuilder[T]) build() (*T, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(T)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}
