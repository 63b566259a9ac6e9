package script

import "errors"

// Sentinel errors for script loading and validation.
var (
	// ErrDataUnavailable indicates both the primary and the fallback source failed.
	ErrDataUnavailable = errors.New("script data unavailable")
	// ErrUnknownScene indicates an edge or role references a scene absent from the graph.
	ErrUnknownScene = errors.New("unknown scene")
	// ErrMalformedBeat indicates a beat, edge or action carries an unrecognized tag.
	ErrMalformedBeat = errors.New("malformed beat")
	// ErrMalformedDocument indicates a document lacks its texts or scenes field.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrEmptyScript indicates a document decoded to zero beats or scenes.
	ErrEmptyScript = errors.New("empty script")
	// ErrNoManifest indicates no story.toml was found in any source.
	ErrNoManifest = errors.New("story.toml not found")
	// ErrInvalidSecret indicates a gate secret is empty or not numeric.
	ErrInvalidSecret = errors.New("invalid gate secret")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	ValCatMalformedBeat    ValidationCategory = "malformed_beat"
	ValCatUnknownScene     ValidationCategory = "unknown_scene"
	ValCatUnknownAction    ValidationCategory = "unknown_action"
	ValCatUnknownDirection ValidationCategory = "unknown_direction"
	ValCatMissingRole      ValidationCategory = "missing_role"
	ValCatInvalidSecret    ValidationCategory = "invalid_secret"
	ValCatUnreadable       ValidationCategory = "unreadable"
)

// ValidationError records a validation problem with source context.
type ValidationError struct {
	Category ValidationCategory
	Chapter  string
	SceneID  string
	Field    string
	Err      error
}

// Error returns a human-readable string including chapter and scene context.
func (e *ValidationError) Error() string {
	prefix := e.Chapter
	if e.SceneID != "" {
		prefix += ": scene " + e.SceneID
	}
	if e.Field != "" {
		prefix += ": " + e.Field
	}
	return prefix + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
