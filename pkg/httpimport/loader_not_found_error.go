package httpimport

import "fmt"

// ErrLoaderNotFound is the error returned by a LoaderResolver that has no
// opinion about a request, allowing the next resolver in a chain to run.
var ErrLoaderNotFound = fmt.Errorf("loader not found")
