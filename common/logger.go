package common

import (
	"github.com/cmoussa1/flux-data-monitoring/status"
)

// MT: Constant after initialization; thread-safe
var Log status.Logger = status.Default()
