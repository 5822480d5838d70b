package config

import "time"

// Vite defaults
const (
	DefaultAssetsPath      = "dist"
	DefaultManifestPath    = "dist/.vite/manifest.json"
	DefaultDevServerURL    = "http://localhost:5173"
	DefaultStaticURLPrefix = "/static"
	DefaultDevPort         = "5173"
	EnvDevelopment         = "development"

	// HMRClientPath is the dev server endpoint serving the HMR bootstrap script.
	HMRClientPath = "/@vite/client"
	// ViteMetaDir holds the manifest inside the build output and is never served.
	ViteMetaDir = ".vite"
	// HashedAssetsDir is where Vite writes content-hashed files.
	HashedAssetsDir = "assets/"
)

// Server
const (
	ServerReadTimeout    = 15 * time.Second
	ServerWriteTimeout   = 30 * time.Second
	ServerIdleTimeout    = 60 * time.Second
	ServerMaxHeaderBytes = 1 << 20
	ShutdownTimeout      = 10 * time.Second
)

// Static caching
const (
	CacheControlImmutable = "public, max-age=31536000, immutable"
	CacheControlNoCache   = "no-cache"
)

// Logging
const (
	LogFilePrefix = "viteassets-"
	LogMaxAgeDays = 30
)
