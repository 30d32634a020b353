package config

import (
	"regexp"
	"sync"
)

// Variable Type IDs for frontend Identification. Values over 100 are free for custom use.
const (
	OptTypeString uint8 = 1
	OptTypeBool   uint8 = 4
)

// Expertise Level constants.
const (
	ExpertiseLevelUser      uint8 = 1
	ExpertiseLevelExpert    uint8 = 2
	ExpertiseLevelDeveloper uint8 = 3
)

func getTypeName(t uint8) string {
	switch t {
	case OptTypeString:
		return "string"
	case OptTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Option describes a configuration option.
type Option struct {
	sync.Mutex

	Name            string
	Key             string // in path format: category/sub/key
	Description     string
	ExpertiseLevel  uint8
	OptType         uint8
	DefaultValue    interface{}
	ValidationRegex string

	activeValue        *valueCache // runtime value (loaded from config file or set by user)
	activeDefaultValue *valueCache // runtime default value (set by SetDefaultConfigOption)
	compiledRegex      *regexp.Regexp
}
