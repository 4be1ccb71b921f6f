package assets

import (
	"embed"
)

// Prompts holds the prompt templates, one file per stage and language.
//
//go:embed prompts/*.tmpl
var Prompts embed.FS
