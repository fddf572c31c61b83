package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const eventTimeLayout = "2006-01-02T15:04:05"

// ScheduleItem is one entry of the wedding day programme.
type ScheduleItem struct {
	Time  string `yaml:"time" json:"time"`
	Title string `yaml:"title" json:"title"`
}

// EventMedia points at the assets the invitation stages play.
type EventMedia struct {
	IntroVideo   string `yaml:"intro_video" json:"introVideo"`
	AmbientAudio string `yaml:"ambient_audio" json:"ambientAudio"`
}

// Event is the wedding profile shown on every invitation.
type Event struct {
	Groom    string         `yaml:"groom" json:"groom"`
	Bride    string         `yaml:"bride" json:"bride"`
	Date     string         `yaml:"date" json:"date"`
	Timezone string         `yaml:"timezone" json:"timezone"`
	Venue    string         `yaml:"venue" json:"venue"`
	Address  string         `yaml:"address" json:"address"`
	MapURL   string         `yaml:"map_url" json:"mapUrl"`
	Media    EventMedia     `yaml:"media" json:"media"`
	Schedule []ScheduleItem `yaml:"schedule" json:"schedule"`

	startsAt time.Time
}

// StartsAt is the ceremony start resolved in the event timezone.
func (e Event) StartsAt() time.Time { return e.startsAt }

// LoadEvent reads the YAML event profile from path.
func LoadEvent(path string) (Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Event{}, fmt.Errorf("read event file: %w", err)
	}
	return ParseEvent(raw)
}

// ParseEvent decodes and validates an event profile.
func ParseEvent(raw []byte) (Event, error) {
	var ev Event
	if err := yaml.Unmarshal(raw, &ev); err != nil {
		return Event{}, fmt.Errorf("parse event file: %w", err)
	}

	tz := strings.TrimSpace(ev.Timezone)
	if tz == "" {
		tz = "Asia/Phnom_Penh"
		ev.Timezone = tz
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Event{}, fmt.Errorf("event timezone %q: %w", tz, err)
	}

	ev.startsAt, err = time.ParseInLocation(eventTimeLayout, strings.TrimSpace(ev.Date), loc)
	if err != nil {
		return Event{}, fmt.Errorf("event date %q: %w", ev.Date, err)
	}
	return ev, nil
}
