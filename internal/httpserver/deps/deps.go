package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tooldex/tooldex/internal/analytics"
	"github.com/tooldex/tooldex/internal/catalog"
	"github.com/tooldex/tooldex/internal/collections"
	"github.com/tooldex/tooldex/internal/compare"
	"github.com/tooldex/tooldex/internal/identity"
	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/prefs"
	"github.com/tooldex/tooldex/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Backend string // active persistence backend name, for /infra

	Catalog     *catalog.Index
	Store       store.Adapter
	Auth        identity.Authenticator
	KV          kv.Store
	Prefs       *prefs.Manager
	Reviews     *collections.Reviews
	Submissions *collections.Submissions
	Chat        *collections.Chat
	Favorites   *compare.List
	Comparison  *compare.List
	Analytics   *analytics.Recorder
	Debouncer   *analytics.SearchDebouncer

	JWTSecret []byte
	TokenTTL  time.Duration

	AllowedCIDRS []string // IPs allowed on infra and admin endpoints
	TrustProxy   bool     // resolve client IPs from proxy headers

	RedisClient *redis.Client // nil unless the kv medium is redis

	ReloadTrigger chan struct{} // manual catalog reload
	GCTrigger     chan struct{} // manual garbage collection
}
