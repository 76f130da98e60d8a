package common

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

// Interrupt blocks until SIGINT or SIGTERM arrives or cancel closes,
// and reports which of the two ended the wait.
func Interrupt(cancel <-chan struct{}) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case s := <-sig:
		return fmt.Errorf("received signal %s", s)
	case <-cancel:
		return errors.New("canceled")
	}
}
