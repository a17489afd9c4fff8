package main

import (
	"github.com/Grrwahrr/tari/infrastructure/logger"
	"github.com/Grrwahrr/tari/util/panics"
)

var (
	log   = logger.RegisterSubSystem("HVRF")
	spawn = panics.GoroutineWrapperFunc(log)
)
