package deps

import (
	"time"

	"github.com/MrSnakeDoc/sourcepage/internal/logger"
	"github.com/MrSnakeDoc/sourcepage/internal/scheduler"
)

// StatusSource exposes the outcome of the latest page build.
type StatusSource interface {
	Status() scheduler.BuildStatus
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time // for testing, defaults to time.Now
	ReloadCIDRS   []string         // IPs/CIDRs allowed to POST /reload
	TrustProxy    bool             // true if running behind a trusted reverse proxy
	SiteDir       string           // directory holding the generated page and its stylesheet
	IndexFile     string           // base name of the generated page (ex: index.html)
	Builds        StatusSource     // latest build outcome, used by readiness
	ReloadTrigger chan struct{}    // channel to request a full rebuild
}
