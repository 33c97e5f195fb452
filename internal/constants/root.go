package constants

const (
	AppName            = "weekwise"
	DefaultKeyringUser = "feed-signing-secret"
	DefaultConfigPath  = "~/.config/weekwise/weekwise.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Workday defaults applied when a user has no stored calendar settings
	DefaultWorkdayStart = "09:00"
	DefaultWorkdayEnd   = "17:00"

	// Planning option bounds enforced at the boundary
	DefaultPlanDays       = 7
	MinPlanDays           = 1
	MaxPlanDays           = 14
	DefaultGranularityMin = 15
	MinGranularityMin     = 5
	MaxGranularityMin     = 60
	DefaultBufferMin      = 10
	MinBufferMin          = 0
	MaxBufferMin          = 120

	// MinDurationMin is the smallest schedulable item duration
	MinDurationMin = 5

	// MissedSlotGraceMin is how far past a fixed slot's end "now" must be
	// before the slot counts as missed and the item is rescheduled flexibly.
	// The same grace pads today's earliest flexible start.
	MissedSlotGraceMin = 15

	// Feed token constants
	FeedTokenScope   = "calendar_feed"
	FeedTokenTTLDays = 180
	FeedSecretEnvVar = "WEEKWISE_FEED_SECRET"
)

// DefaultWorkingDays is Monday through Friday (0=Sunday .. 6=Saturday).
var DefaultWorkingDays = []int{1, 2, 3, 4, 5}
