package synology

import "fmt"

// Error is a failure reported by the service itself: the HTTP exchange
// succeeded but the envelope carried success=false.
type Error struct {
	API  string
	Code int
}

func (e *Error) Error() string {
	if msg, ok := errorText[e.Code]; ok {
		return fmt.Sprintf("%s: %s (code %d)", e.API, msg, e.Code)
	}
	return fmt.Sprintf("%s: error code %d", e.API, e.Code)
}

// errorText covers the common API codes plus the documented auth codes.
var errorText = map[int]string{
	100: "unknown error",
	101: "invalid parameter",
	102: "API does not exist",
	103: "method does not exist",
	104: "version not supported",
	105: "insufficient permission",
	106: "session timeout",
	107: "session interrupted by duplicate login",
	119: "invalid session id",
	400: "invalid credentials",
	401: "account disabled",
	402: "permission denied",
	403: "one-time password required",
	404: "one-time password authentication failed",
}
