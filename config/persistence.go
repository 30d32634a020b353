package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/safing/securerand/log"
)

var (
	configFilePath     string
	configFilePathLock sync.Mutex
)

func getConfigFilePath() string {
	configFilePathLock.Lock()
	defer configFilePathLock.Unlock()
	return configFilePath
}

func setConfigFilePath(path string) {
	configFilePathLock.Lock()
	defer configFilePathLock.Unlock()
	configFilePath = path
}

// LoadConfigFile reads the hierarchical JSON config file at path and applies
// it as the user defined config. Subsequent changes through SetConfigOption
// are saved back to the same file. A missing file is not an error, it will be
// created on the next save.
func LoadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			setConfigFilePath(path)
			return nil
		}
		return fmt.Errorf("config: failed to read config file: %w", err)
	}

	newValues, err := JSONToMap(data)
	if err != nil {
		return fmt.Errorf("config: failed to parse config file %s: %w", path, err)
	}

	setConfigFilePath(path)
	return setConfig(newValues)
}

func saveConfig() error {
	// check if persistence is configured
	path := getConfigFilePath()
	if path == "" {
		return nil
	}

	// extract values
	activeValues := make(map[string]interface{})
	optionsLock.RLock()
	for key, option := range options {
		option.Lock()
		if option.activeValue != nil {
			activeValues[key] = option.activeValue.getData(option)
		}
		option.Unlock()
	}
	optionsLock.RUnlock()

	// convert to JSON
	data, err := MapToJSON(activeValues)
	if err != nil {
		log.Errorf("config: failed to save config: %s", err)
		return err
	}

	// write file
	return os.WriteFile(path, data, 0o0600)
}

// JSONToMap parses and flattens a hierarchical json object.
// Nested keys are joined with a slash: {"a": {"b": 1}} becomes {"a/b": 1}.
func JSONToMap(jsonData []byte) (map[string]interface{}, error) {
	if !gjson.ValidBytes(jsonData) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(jsonData)
	if !root.IsObject() {
		return nil, ErrInvalidJSON
	}

	loaded := make(map[string]interface{})
	flatten(loaded, root, "")
	return loaded, nil
}

func flatten(rootMap map[string]interface{}, subMap gjson.Result, subKey string) {
	subMap.ForEach(func(key, value gjson.Result) bool {
		// get next level key
		subbedKey := key.String()
		if subKey != "" {
			subbedKey = subKey + "/" + subbedKey
		}

		// check for next subMap
		if value.IsObject() {
			flatten(rootMap, value, subbedKey)
		} else {
			rootMap[subbedKey] = value.Value()
		}
		return true
	})
}

// MapToJSON expands a flattened map and returns it as json.
func MapToJSON(values map[string]interface{}) ([]byte, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	data := []byte("{}")
	for _, key := range keys {
		var err error
		data, err = sjson.SetBytes(data, keyToPath(key), values[key])
		if err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return data, nil
}

// keyToPath converts an option key to a gjson/sjson path.
func keyToPath(key string) string {
	key = strings.ReplaceAll(key, ".", `\.`)
	return strings.ReplaceAll(key, "/", ".")
}
