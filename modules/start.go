package modules

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tevino/abool"

	"github.com/safing/securerand/log"
)

var startComplete = abool.NewBool(false)

// StartCompleted returns whether starting has completed.
func StartCompleted() bool {
	return startComplete.IsSet()
}

// Start starts all modules in the correct order. In case of an error, the caller should call Shutdown to stop the modules that were already started.
func Start() error {
	modulesLock.RLock()
	defer modulesLock.RUnlock()

	// inter-link modules
	err := initDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: failed to initialize modules: %s\n", err)
		return err
	}

	// parse flags
	err = parseFlags()
	if err != nil {
		if !errors.Is(err, ErrCleanExit) {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: failed to parse flags: %s\n", err)
		}
		return err
	}

	// prep modules
	err = prepareModules()
	if err != nil {
		if !errors.Is(err, ErrCleanExit) {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: %s\n", err)
		}
		return err
	}

	// start logging
	err = log.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: failed to start logging: %s\n", err)
		return err
	}

	// start modules
	log.Info("modules: initiating...")
	err = startModules()
	if err != nil {
		log.Critical(err.Error())
		return err
	}

	// complete startup
	log.Infof("modules: started %d modules", len(modules))
	startComplete.Set()

	return nil
}

type report struct {
	module *Module
	err    error
}

func prepareModules() error {
	return runStage(
		func(m *Module) bool { return m.ReadyToPrep() },
		func(m *Module) error { return m.runCtrlFnWithTimeout("prep module", 10*time.Second, m.prep) },
		func(m *Module) { m.Prepped.Set() },
		"prep",
	)
}

func startModules() error {
	return runStage(
		func(m *Module) bool { return m.ReadyToStart() },
		func(m *Module) error { return m.runCtrlFnWithTimeout("start module", 60*time.Second, m.start) },
		func(m *Module) {
			m.Started.Set()
			log.Infof("modules: started %s", m.Name)
		},
		"start",
	)
}

// runStage executes a lifecycle stage on all modules, running every module
// whose dependencies are ready concurrently.
func runStage(ready func(*Module) bool, exec func(*Module) error, done func(*Module), stageName string) error {
	if len(modules) == 0 {
		return nil
	}

	var rep *report
	reports := make(chan *report)
	execCnt := 0
	reportCnt := 0

	for {
		// find modules to exec
		for _, m := range modules {
			if ready(m) {
				execCnt++
				m.inTransition.Set()

				execM := m
				go func() {
					reports <- &report{
						module: execM,
						err:    exec(execM),
					}
				}()
			}
		}

		// check for dep loop
		if execCnt == reportCnt {
			return fmt.Errorf("modules: dependency loop detected, cannot %s", stageName)
		}

		// wait for reports
		rep = <-reports
		rep.module.inTransition.UnSet()
		if rep.err != nil {
			if errors.Is(rep.err, ErrCleanExit) {
				return rep.err
			}
			// drain the reports of modules still executing
			go func(pending int) {
				for i := 0; i < pending; i++ {
					<-reports
				}
			}(execCnt - reportCnt - 1)
			return fmt.Errorf("modules: could not %s module %s: %w", stageName, rep.module.Name, rep.err)
		}
		reportCnt++
		done(rep.module)

		// exit if done
		if reportCnt == len(modules) {
			return nil
		}

	}
}
