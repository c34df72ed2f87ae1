package auth

import "github.com/gin-gonic/gin"

// SessionCookie is the cookie the session token travels in.
const SessionCookie = "token"

// SetSessionCookie attaches the session token to the response. httpOnly
// always; Secure only in production so local development over plain HTTP
// keeps working.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetCookie(SessionCookie, token, int(TokenTTL.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
