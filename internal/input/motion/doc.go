// Package motion routes analog input: mouse motion, thumbsticks and
// direction pads. Camera and continuous joystick actions register axis
// handlers under a logical name; draggable buttons register drag handlers
// that take priority over the camera while they are held.
//
// Mouse motion is routed in one of two ways. With mouse mapping enabled
// (HandleMouseMoved) it drives drags first and otherwise the axis handlers
// registered under NameMouse. With mouse mapping disabled
// (HandleFakeMouseMoved) it only drives drags and the cursor stays the
// application's.
package motion
