// Package configs provides embedded configuration templates for fruitful.
//
// Templates are embedded at build time with go:embed so they ship in
// every distribution. `fruitful config init` writes the project template
// to .fruitful.yaml in the working directory.
//
// Configuration hierarchy (see internal/config Load()):
//  1. Hardcoded defaults
//  2. User config (~/.config/fruitful/config.yaml)
//  3. Project config (.fruitful.yaml)
//  4. Environment variables (FRUITFUL_*)
package configs

import _ "embed"

// ProjectConfigTemplate is the annotated template for project-level
// configuration, written by `fruitful config init`.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
