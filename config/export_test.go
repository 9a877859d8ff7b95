package config

// ResolveToken exports resolveToken for testing.
var ResolveToken = resolveToken //nolint:gochecknoglobals // test export

// Validate exports validate for testing.
var Validate = validate //nolint:gochecknoglobals // test export

// ApplyDefaults exports applyDefaults for testing.
var ApplyDefaults = applyDefaults //nolint:gochecknoglobals // test export
