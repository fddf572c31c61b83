// Package invitation drives the staged invitation experience a guest sees
// after opening their link: invite, then the intro film, then the event info.
package invitation

import (
	"fmt"

	"wedding/internal/domain"
)

type Stage string

const (
	StageInvite Stage = "invite"
	StageIntro  Stage = "intro"
	StageInfo   Stage = "info"
)

type Event string

const (
	EventOpen            Event = "open"
	EventMediaEnded      Event = "media_ended"
	EventSkip            Event = "skip"
	EventAutoplayBlocked Event = "autoplay_blocked"
	EventToggleAudio     Event = "toggle_audio"
)

// AmbientVolume is the fixed volume ambient audio starts at on the info stage.
const AmbientVolume = 0.3

func ParseEvent(s string) (Event, error) {
	switch e := Event(s); e {
	case EventOpen, EventMediaEnded, EventSkip, EventAutoplayBlocked, EventToggleAudio:
		return e, nil
	default:
		return "", domain.ValidationError{Field: "event", Msg: fmt.Sprintf("unknown event %q", s)}
	}
}

type AudioState struct {
	Playing bool    `json:"playing"`
	Volume  float64 `json:"volume"`
}

// Machine is the invite -> intro -> info sequence for one visitor.
// It is not safe for concurrent use; Store serializes access.
type Machine struct {
	stage           Stage
	audio           AudioState
	autoplayBlocked bool
}

func NewMachine() *Machine {
	return &Machine{stage: StageInvite}
}

func (m *Machine) Stage() Stage { return m.stage }
func (m *Machine) Audio() AudioState { return m.audio }
func (m *Machine) AutoplayBlocked() bool { return m.autoplayBlocked }

// Fire applies e and reports whether the stage changed. Events that do not
// apply to the current stage are ignored; info never leaves info.
func (m *Machine) Fire(e Event) bool {
	switch e {
	case EventOpen:
		if m.stage == StageInvite {
			m.stage = StageIntro
			return true
		}
	case EventMediaEnded, EventSkip:
		if m.stage == StageIntro {
			m.enterInfo()
			return true
		}
	case EventAutoplayBlocked:
		if m.stage == StageIntro {
			m.autoplayBlocked = true
		}
	case EventToggleAudio:
		m.audio.Playing = !m.audio.Playing
		if m.audio.Volume == 0 {
			m.audio.Volume = AmbientVolume
		}
	}
	return false
}

func (m *Machine) enterInfo() {
	m.stage = StageInfo
	m.audio = AudioState{Playing: true, Volume: AmbientVolume}
}
