// Package swagger carries the service's API document, embedded into the
// binary so it can be served regardless of the process working directory.
package swagger

import _ "embed"

//go:embed invoice.swagger.json
var Document []byte
