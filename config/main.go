package config

import (
	"flag"

	"github.com/safing/securerand/log"
	"github.com/safing/securerand/modules"
)

var configFileFlag string

func init() {
	modules.Register("config", nil, start, nil)

	flag.StringVar(&configFileFlag, "config", "", "load configuration from this JSON file")
}

func start() error {
	if configFileFlag == "" {
		return nil
	}

	err := LoadConfigFile(configFileFlag)
	if err != nil {
		return err
	}
	log.Infof("config: loaded configuration from %s", configFileFlag)
	return nil
}
