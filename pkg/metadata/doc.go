// Package metadata decides how a single model property is presented: the
// display and edit format strings, the template hint a renderer should use,
// and a human-readable label.
//
// Resolution is a pure function of a PropertyDescriptor. Type-based formats
// (booleans render as Yes/No, dates as yyyy-MM-dd) apply to every property.
// Name conventions then run in order and stop at the first match: names
// ending in "Id" are hidden, names containing "Email" are tagged as email
// fields, and everything else receives a label produced by splitting the
// PascalCase name into words. Label generation can be scoped to a set of
// container types through a ScopeFilter, and never replaces a label the
// caller set explicitly.
//
// Hosts that own a mutable metadata record call Resolver.ApplyTo, which
// writes only the values a rule decided.
package metadata
