package profiling

import (
	"net"
	"net/http"

	// Required for profiling
	_ "net/http/pprof"

	"github.com/Grrwahrr/tari/infrastructure/logger"
	"github.com/Grrwahrr/tari/infrastructure/os/signal"
	"github.com/Grrwahrr/tari/util/panics"
)

// Start starts the profiling server. If the server stops, a shutdown is
// requested through signal.ShutdownRequestChannel.
func Start(port string, log *logger.Logger) {
	spawn := panics.GoroutineWrapperFunc(log)
	spawn("profiling.Start", func() {
		listenAddr := net.JoinHostPort("", port)
		log.Infof("Profile server listening on %s", listenAddr)
		profileRedirect := http.RedirectHandler("/debug/pprof", http.StatusSeeOther)
		http.Handle("/", profileRedirect)
		log.Errorf("Profile server stopped: %s", http.ListenAndServe(listenAddr, nil))
		signal.ShutdownRequestChannel <- struct{}{}
	})
}
