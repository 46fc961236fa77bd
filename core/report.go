package core

// Report is a downloadable export.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}
