package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/display/*.tmpl templates/editor/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the stylesheet served from AssetsFS.
const StylesheetName = "displaymeta.css"

// TemplatesFS exposes the embedded template bundle. Hosts can copy it as a
// starting point for their own templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet so hosts can serve it.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
