package profiling

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/Grrwahrr/tari/infrastructure/logger"
	"github.com/Grrwahrr/tari/infrastructure/os/signal"
)

func TestStartRequestsShutdownOnFailure(t *testing.T) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("TestStartRequestsShutdownOnFailure: Listen: %s", err)
	}
	defer listener.Close()
	port := strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)

	interrupted := signal.InterruptListener()
	Start(port, logger.RegisterSubSystem("PROF"))

	select {
	case <-interrupted:
	case <-time.After(5 * time.Second):
		t.Fatalf("TestStartRequestsShutdownOnFailure: a profile server on a used port did not request a shutdown")
	}
}
