// internal/game/utils.go
package game

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// convertEventToBytes marshals a GameEvent into JSON bytes.
// Logs a warning and returns empty JSON "{}" on marshalling error.
func convertEventToBytes(ev GameEvent, logger logrus.FieldLogger) []byte {
	data, err := json.Marshal(ev)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("type", ev.Type).Warn("Failed to marshal GameEvent")
		}
		return []byte("{}")
	}
	return data
}
