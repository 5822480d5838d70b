// Package vite renders the HTML tags that load Vite-built assets from Go templates.
//
// In development mode tags point at the Vite dev server. In production they
// point at the hashed files listed in the build manifest, served under the
// configured static prefix.
package vite

import (
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/Fantasim/viteassets/internal/config"
	"github.com/Fantasim/viteassets/internal/manifest"
)

// Template function names registered by FuncMap.
const (
	FuncAsset     = "vite_asset"
	FuncHMRClient = "vite_hmr_client"
)

const tagSeparator = "\n    "

// Resolver turns logical asset paths into trusted HTML tags.
type Resolver struct {
	cfg    *config.ViteConfig
	reader *manifest.Reader
}

// NewResolver creates a Resolver. A nil reader reads the manifest from
// cfg.FullManifestPath().
func NewResolver(cfg *config.ViteConfig, reader *manifest.Reader) *Resolver {
	if reader == nil {
		reader = manifest.NewReader(cfg.FullManifestPath())
	}
	return &Resolver{cfg: cfg, reader: reader}
}

// Config returns the configuration the resolver was built with.
func (r *Resolver) Config() *config.ViteConfig {
	return r.cfg
}

// Manifest returns the underlying manifest reader.
func (r *Resolver) Manifest() *manifest.Reader {
	return r.reader
}

// Tags returns the tags needed to load logicalPath, in render order.
// An unknown path in production yields no tags and no error.
func (r *Resolver) Tags(logicalPath string) ([]template.HTML, error) {
	if r.cfg.IsDevMode() {
		url := r.cfg.DevServerHost() + "/" + logicalPath
		if isCSS(logicalPath) {
			return []template.HTML{stylesheetTag(url)}, nil
		}
		return []template.HTML{scriptTag(url)}, nil
	}

	chunk, err := r.reader.GetChunk(logicalPath)
	if err != nil {
		return nil, fmt.Errorf("resolve vite asset %q: %w", logicalPath, err)
	}
	if chunk == nil {
		slog.Debug("vite asset not in manifest", "path", logicalPath)
		return nil, nil
	}

	prefix := r.cfg.StaticPrefix()
	var tags []template.HTML

	if chunk.File != "" {
		url := prefix + "/" + chunk.File
		// Either suffix marks a stylesheet; an entry and its output may disagree.
		if isCSS(logicalPath) || isCSS(chunk.File) {
			tags = append(tags, stylesheetTag(url))
		} else {
			tags = append(tags, scriptTag(url))
		}
	}

	for _, css := range chunk.CSS {
		tags = append(tags, stylesheetTag(prefix+"/"+css))
	}

	return tags, nil
}

// Asset returns the tags for logicalPath joined into a single fragment.
func (r *Resolver) Asset(logicalPath string) (template.HTML, error) {
	tags, err := r.Tags(logicalPath)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return template.HTML(strings.Join(parts, tagSeparator)), nil
}

// HMRClient returns the dev server's HMR bootstrap script, or nothing in production.
func (r *Resolver) HMRClient() template.HTML {
	if !r.cfg.IsDevMode() {
		return ""
	}
	return scriptTag(r.cfg.DevServerHost() + config.HMRClientPath)
}

// FuncMap exposes the resolver to html/template. Register it before parsing.
func (r *Resolver) FuncMap() template.FuncMap {
	return template.FuncMap{
		FuncAsset:     r.Asset,
		FuncHMRClient: r.HMRClient,
	}
}

func isCSS(p string) bool {
	return strings.HasSuffix(p, ".css")
}

func stylesheetTag(href string) template.HTML {
	return template.HTML(`<link rel="stylesheet" href="` + template.HTMLEscapeString(href) + `">`)
}

func scriptTag(src string) template.HTML {
	return template.HTML(`<script type="module" src="` + template.HTMLEscapeString(src) + `"></script>`)
}
