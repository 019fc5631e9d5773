package deps

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mkoval/markd/internal/logger"
	"github.com/mkoval/markd/internal/reminders"
	sqlitestore "github.com/mkoval/markd/internal/store/sqlite"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Store     *sqlitestore.Store  // the shared bookmark store
	Reminders *reminders.Service  // complete/snooze mutators
	Validate  *validator.Validate // request payload validation

	CheckTrigger      chan struct{} // forces an immediate reminder check
	SeedReloadTrigger chan struct{} // forces a seed file reload (nil when seeding is disabled)
}
