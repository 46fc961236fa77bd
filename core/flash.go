package core

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot status message shown on the next rendered page.
type Flash struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (f Flash) IsEmpty() bool { return f.Message == "" }

func SuccessFlash(msg string) Flash { return Flash{Message: msg, Type: FlashSuccess} }
func ErrorFlash(msg string) Flash   { return Flash{Message: msg, Type: FlashError} }
