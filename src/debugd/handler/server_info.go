package handler

import (
	"fmt"

	"github.com/grkek/juicy-fruit/src/debugd/internal/serverinfofile"
	"go.uber.org/config"
)

const (
	_errInvalidEntry = "type error or missing field for key %q"

	_fmtInfoFileKey = "%s-%s"

	_configKeyWebsocket = "websocket"
	_configKeyPath      = "path"
	_infoFilePrefix     = "ws"
)

// Output the upgrade path from the websocket configuration block.
// The listen address is only known once the listener is bound, so the websocket module adds it on start.
func outputWebsocketConnectionInfo(cfg config.Provider, infofile serverinfofile.ServerInfoFile) error {
	var cfgData map[string]interface{}
	if err := cfg.Get(_configKeyWebsocket).Populate(&cfgData); err != nil {
		return fmt.Errorf("loading websocket config: %v", err)
	}

	path, ok := cfgData[_configKeyPath]
	if !ok || path == nil {
		path = "/"
	}
	value, ok := path.(string)
	if !ok {
		return fmt.Errorf(_errInvalidEntry, _configKeyWebsocket+"."+_configKeyPath)
	}

	if err := infofile.UpdateField(fmt.Sprintf(_fmtInfoFileKey, _infoFilePrefix, _configKeyPath), value); err != nil {
		return fmt.Errorf("outputting %q path to info file: %w", _configKeyWebsocket, err)
	}
	return nil
}
