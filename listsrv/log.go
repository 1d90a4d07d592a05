package listsrv

import (
	"github.com/sirupsen/logrus"
)

// Log is used for socket lifecycle and config reload messages.
// Replace its output or level as needed.
var Log = logrus.New()
