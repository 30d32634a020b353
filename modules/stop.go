package modules

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"

	"github.com/safing/securerand/log"
)

var shutdownInitiated = abool.NewBool(false)

// Shutdown stops all modules in the correct order. All modules are stopped,
// even if some of them fail to do so. The errors are returned combined.
func Shutdown() error {
	if !shutdownInitiated.SetToIf(false, true) {
		return errors.New("shutdown already initiated")
	}

	if startComplete.IsSet() {
		log.Warning("modules: starting shutdown...")
	} else {
		log.Warning("modules: aborting, shutting down...")
	}

	err := stopModules()
	if err != nil {
		log.Errorf("modules: shutdown completed with errors: %s", err)
	} else {
		log.Info("modules: shutdown complete")
	}

	log.Shutdown()
	return err
}

func stopModules() error {
	var result *multierror.Error
	reports := make(chan *report)

	modulesLock.Lock()
	defer modulesLock.Unlock()

	for {
		// find modules to exec
		execCnt := 0
		for _, m := range modules {
			if m.ReadyToStop() {
				execCnt++
				m.inTransition.Set()

				execM := m
				go func() {
					reports <- &report{
						module: execM,
						err:    execM.shutdown(),
					}
				}()
			}
		}

		if execCnt == 0 {
			return result.ErrorOrNil()
		}

		// wait for this batch to finish
		for i := 0; i < execCnt; i++ {
			rep := <-reports
			if rep.err != nil {
				result = multierror.Append(result, fmt.Errorf("could not stop module %s: %w", rep.module.Name, rep.err))
			}
			rep.module.Stopped.Set()
			rep.module.inTransition.UnSet()
		}
	}
}
