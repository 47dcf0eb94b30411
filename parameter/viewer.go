package parameter

import "time"

// Projection & Frame Pacing
const (
	// FieldOfView is the default perspective divisor offset
	FieldOfView = 90.0

	// MaxFrameRate caps accepted frames per second
	MaxFrameRate = 60.0

	// IdleWait is the longest the run loop waits between frame checks
	// Kept well under one frame so input is still read every frame
	IdleWait = time.Millisecond

	// ProjectionEpsilon replaces an exactly-zero z+fov divisor
	ProjectionEpsilon = 0.001
)

// Interaction
const (
	// RotateSpeed is radians per second of frame time applied per rotation key event
	RotateSpeed = 4.0

	// ScaleUpFactor is applied to every vertex per scale-up event
	ScaleUpFactor = 1.01

	// ScaleDownFactor is applied to every vertex per scale-down event
	ScaleDownFactor = 0.99

	// ShowOverlay is the initial overlay visibility
	ShowOverlay = true
)

// Rendering
const (
	// Glyph is the character plotted for every line cell
	Glyph = '#'

	// OverlayTitle prefixes the status line
	OverlayTitle = "wireview"
)

// Model
const (
	// CubeHalfExtent is the half edge length of the built-in cube
	CubeHalfExtent = 10.0

	// FitRadius is the bounding radius a model is scaled to when fitting is enabled
	FitRadius = 30.0
)
