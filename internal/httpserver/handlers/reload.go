package handlers

import (
	"net/http"

	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/logger"
)

// Reload triggers a manual catalog reload and, when wired, a garbage
// collection sweep. A full trigger channel means one is already running.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalogTriggered := false
		select {
		case d.ReloadTrigger <- struct{}{}:
			catalogTriggered = true
			d.Logger.Info("manual catalog reload triggered",
				logger.String("remote_ip", r.RemoteAddr))
		default:
			d.Logger.Warn("catalog reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
		}

		gcTriggered := false
		if d.GCTrigger != nil {
			select {
			case d.GCTrigger <- struct{}{}:
				gcTriggered = true
				d.Logger.Info("manual garbage collection triggered",
					logger.String("remote_ip", r.RemoteAddr))
			default:
				d.Logger.Warn("garbage collection already in progress",
					logger.String("remote_ip", r.RemoteAddr))
			}
		}

		if catalogTriggered || gcTriggered {
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("reload triggered\n"))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("reload already in progress\n"))
	}
}
