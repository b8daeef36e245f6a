package instance

import (
	"os"

	"github.com/angelmondragon/wms-backend/pkg/env"
)

// ID identifies this process in logs. WMS_INSTANCE_ID wins, then the
// platform dyno name, then the hostname.
func ID() string {
	if id := env.First("WMS_INSTANCE_ID", "DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
