package chainstore

import (
	"github.com/Grrwahrr/tari/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CSTR")
