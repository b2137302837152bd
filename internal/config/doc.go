// Package config loads, merges and validates configuration for the two
// clinsync binaries.
//
// Both the server and the agent read configuration from three sources,
// merged in priority order (later sources fill fields the earlier ones left
// zero): environment variables, command-line flags, and an optional JSON
// file whose path is itself resolved from the first two sources. Merging is
// performed with dario.cat/mergo via the shared configBuilder.
package config
