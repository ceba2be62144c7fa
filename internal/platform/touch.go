package platform

// TouchEmulator injects synthetic touches into the application.
// Each touch is identified by a caller chosen id; a second Press for an
// id that is already down moves it instead.
type TouchEmulator interface {
	Press(id string, at Point)
	Move(id string, at Point)
	Release(id string)
}
