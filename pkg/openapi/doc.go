// Package openapi exposes the contracts used to read display descriptors from
// OpenAPI component schemas. Implementations live under internal/openapi so
// kin-openapi types never leak to callers; construction helpers sit in the
// top-level displaymeta package.
//
// A component schema maps onto the resolver inputs as follows:
//
//	component name            ContainerType.Name
//	allOf $ref targets        ContainerType.Bases (transitively)
//	type: boolean             TypeBoolean
//	format: date-time         TypeDate
//	format: date              TypeDateOnly
//	x-display-label           explicit label
//	x-ui-hint                 explicit template hint
package openapi
