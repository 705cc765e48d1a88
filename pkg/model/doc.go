// Package model defines the typed display model consumed by renderers. The
// builder reflects a Go struct, produces a metadata.PropertyDescriptor per
// exported field and lets a metadata.Resolver decide formats, template hints
// and labels. Builders reside in internal/model but return the types defined
// here.
//
// Struct tags refine the result:
//
//	display:"Given name"     explicit label, never replaced
//	display:"-"              skip the field
//	description:"..."        help text
//	uihint:"MultilineText"   explicit template hint
//	ui:"placeholder=Jane"    curated renderer hints (see AllowedUIHintKeys)
//	validate:"required"      marks the field required
//
// Metadata is built once per type; WithCache keeps an LRU of built models so
// hosts do not rebuild on every request.
package model
