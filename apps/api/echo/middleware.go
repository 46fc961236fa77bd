package echoapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/tally/core"
)

const (
	flashCookie = "tally_flash"
	flashCtxKey = "flash"

	// maxFlashRunes keeps the cookie well under the 4KB browser limit, even with JSON escapes.
	maxFlashRunes = 256
)

// flashState is the request-scoped flash message.
// incoming was set by a previous request and is consumed by the first render.
type flashState struct {
	secret   []byte
	incoming core.Flash
	consumed bool
}

// flashMiddleware loads the flash message sent with the request into the echo.Context.
func flashMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			state := &flashState{secret: secret}
			if c, err := ctx.Cookie(flashCookie); err == nil {
				if f, ok := decodeFlash(secret, c.Value); ok {
					state.incoming = f
				} else {
					clearFlashCookie(ctx) // tampered or stale
				}
			}
			ctx.Set(flashCtxKey, state)
			return next(ctx)
		}
	}
}

func getFlashState(ctx echo.Context) *flashState {
	if state, ok := ctx.Get(flashCtxKey).(*flashState); ok {
		return state
	}
	return &flashState{consumed: true}
}

// setFlash stores f for the next rendered page.
func setFlash(ctx echo.Context, f core.Flash) {
	state := getFlashState(ctx)
	ctx.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    encodeFlash(state.secret, f),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash message and clears it. Subsequent calls return an empty Flash.
func popFlash(ctx echo.Context) core.Flash {
	state := getFlashState(ctx)
	if state.consumed || state.incoming.IsEmpty() {
		return core.Flash{}
	}
	state.consumed = true
	clearFlashCookie(ctx)
	return state.incoming
}

func clearFlashCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func sign(secret, payload []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

// truncateMessage cuts msg to maxFlashRunes runes, ending it with "..." when cut.
func truncateMessage(msg string) string {
	runes := []rune(msg)
	if len(runes) <= maxFlashRunes {
		return msg
	}
	return string(runes[:maxFlashRunes-3]) + "..."
}

// encodeFlash returns "base64(json).base64(hmac)". Long messages are truncated.
func encodeFlash(secret []byte, f core.Flash) string {
	f.Message = truncateMessage(f.Message)
	payload, _ := json.Marshal(f)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(payload) + "." + enc.EncodeToString(sign(secret, payload))
}

func decodeFlash(secret []byte, value string) (core.Flash, bool) {
	enc := base64.RawURLEncoding
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 {
		return core.Flash{}, false
	}
	payload, err := enc.DecodeString(parts[0])
	if err != nil {
		return core.Flash{}, false
	}
	sig, err := enc.DecodeString(parts[1])
	if err != nil || !hmac.Equal(sig, sign(secret, payload)) {
		return core.Flash{}, false
	}
	var f core.Flash
	if err := json.Unmarshal(payload, &f); err != nil {
		return core.Flash{}, false
	}
	if f.Type != core.FlashSuccess && f.Type != core.FlashError {
		f.Type = core.FlashSuccess
	}
	return f, true
}
