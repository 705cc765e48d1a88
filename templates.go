package displaymeta

import (
	"io/fs"

	vanilla "github.com/goliatone/go-displaymeta/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet the vanilla templates reference so Go
// applications can serve it.
//
// Typical mount:
//
//	r.Handle("/assets/*",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(displaymeta.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
