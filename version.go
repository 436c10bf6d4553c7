package shelf

import _ "embed"

// Version is the release of the library and the shelf binary.
//
//go:embed VERSION
var Version string
