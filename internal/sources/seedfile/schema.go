package seedfile

// File is the YAML shape of a bookmark seed file:
//
//	bookmarks:
//	  - title: Daily Deals
//	    url: https://example.com/deals
//	    category: shopping
//	    tags: [sale, daily]
//	    reminder:
//	      enabled: true
//	      frequency: daily
//	      time: "09:00"
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}

type Entry struct {
	Title    string    `yaml:"title"`
	URL      string    `yaml:"url"`
	Category string    `yaml:"category,omitempty"`
	Tags     []string  `yaml:"tags,omitempty"`
	Notes    string    `yaml:"notes,omitempty"`
	Reminder *Reminder `yaml:"reminder,omitempty"`
}

type Reminder struct {
	Enabled bool `yaml:"enabled"`
	// Frequency is daily, weekly, custom or once.
	Frequency string `yaml:"frequency"`
	// IntervalDays only applies to the custom frequency.
	IntervalDays int    `yaml:"interval_days,omitempty"`
	Time         string `yaml:"time"`
	// Days are weekday numbers 0-6 (0 = Sunday), weekly only.
	Days []int `yaml:"days,omitempty"`
}
