// Package overlay loads YAML/JSON display overrides that sit on top of the
// resolver conventions. An overlay file may configure the label scope and
// per-model field labels, hints and descriptions:
//
//	scope:
//	  targets: [github.com/acme/app/people.Person]
//	  includeDerived: true
//	models:
//	  Person:
//	    fields:
//	      EmailAddress:
//	        label: E-mail
//	        description: "Used for <b>receipts</b>."
//	      Home.PostalCode:
//	        label: ZIP
//
// Models are matched by the form name, the fully qualified container name or
// any ancestor. Ancestor overrides are applied first so a derived model wins.
package overlay
