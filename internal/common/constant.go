package common

// SessionCookieName is the cookie that carries the opaque session token
// between the browser (or CLI client) and the server.
const SessionCookieName = "session_token"

// SessionTokenBytes is the number of random bytes in a session token before
// hex encoding. 32 bytes gives 256 bits of entropy.
const SessionTokenBytes = 32
