package engine

// EventKind classifies a session event.
type EventKind string

const (
	EventStart           EventKind = "session_start"
	EventChapter         EventKind = "chapter"
	EventScene           EventKind = "scene_enter"
	EventPassword        EventKind = "password"
	EventEscape          EventKind = "escape"
	EventUnknownScene    EventKind = "unknown_scene"
	EventDataUnavailable EventKind = "data_unavailable"
	EventMalformedBeat   EventKind = "malformed_beat"
)

// Event describes something that happened during playback. Observers such
// as telemetry and the play log receive every event through Options.OnEvent.
type Event struct {
	Kind       EventKind
	Chapter    string
	Scene      string
	FirstVisit bool
	Gate       GateID
	Accepted   bool
	Err        error
}
