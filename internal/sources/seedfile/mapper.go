package seedfile

import (
	"fmt"

	"github.com/mkoval/markd/internal/domain"
)

// Mapper converts seed file entries into store create inputs.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

func (m *Mapper) Map(f *File) ([]domain.CreateInput, error) {
	inputs := make([]domain.CreateInput, 0, len(f.Bookmarks))
	for i, e := range f.Bookmarks {
		if e.Title == "" || e.URL == "" {
			return nil, fmt.Errorf("seed entry %d: title and url are required", i)
		}

		input := domain.CreateInput{
			Title:    e.Title,
			URL:      e.URL,
			Category: e.Category,
			Tags:     e.Tags,
			Notes:    e.Notes,
		}

		if e.Reminder != nil {
			r, err := mapReminder(e.Reminder)
			if err != nil {
				return nil, fmt.Errorf("seed entry %d (%s): %w", i, e.Title, err)
			}
			input.Reminder = r
		}

		inputs = append(inputs, input)
	}
	return inputs, nil
}

func mapReminder(in *Reminder) (*domain.Reminder, error) {
	r := &domain.Reminder{
		Enabled: in.Enabled,
		Time:    in.Time,
		Days:    in.Days,
	}

	switch in.Frequency {
	case "daily":
		r.Frequency = domain.Frequency{Kind: domain.FrequencyDaily}
	case "weekly":
		r.Frequency = domain.Frequency{Kind: domain.FrequencyWeekly}
	case "once":
		r.Frequency = domain.Frequency{Kind: domain.FrequencyOnce}
	case "custom":
		r.Frequency = domain.Frequency{Kind: domain.FrequencyCustom, IntervalDays: in.IntervalDays}
	default:
		return nil, fmt.Errorf("unknown reminder frequency %q", in.Frequency)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
