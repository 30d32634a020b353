package rng

import (
	"github.com/safing/securerand/config"
	"github.com/safing/securerand/log"
	"github.com/safing/securerand/modules"
)

var eagerInit config.BoolOption

func init() {
	modules.Register("random", prep, start, stop, "config")
}

func prep() error {
	err := config.Register(&config.Option{
		Name:           "Open Entropy Source On Start",
		Key:            "random/eager_init",
		Description:    "Open the entropy source when starting instead of on first use, so that a broken source terminates the process right away.",
		ExpertiseLevel: config.ExpertiseLevelExpert,
		OptType:        config.OptTypeBool,
		DefaultValue:   false,
	})
	if err != nil {
		return err
	}
	eagerInit = config.GetAsBool("random/eager_init", false)
	return nil
}

func start() error {
	log.Infof("rng: using %s entropy source", SourceName)
	if eagerInit() {
		sharedSource()
	}
	return nil
}

// stop releases the entropy source. Draws after stop are fatal on platforms
// that hold a handle to the source.
func stop() error {
	return closeSharedSource()
}
