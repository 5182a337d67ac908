package export

import "errors"

// ErrExport wraps every workbook failure.
var ErrExport = errors.New("export workbook failed")
