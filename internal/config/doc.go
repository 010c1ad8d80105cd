// Package config defines packer settings and provides helpers to load,
// validate and save them in YAML format.
//
// Every field has a default, so a project without a settings file packs with
// the ".meta" suffix, default gzip compression and no exclusions.
package config
