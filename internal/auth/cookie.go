package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/textanalytics/internal/models"
)

const (
	CookieName   = "access_token"
	CookieMaxAge = 1800

	DetailInvalidCredentials = "Cannot validate credentials"
)

// RequireCookie aborts with 403 unless the access_token cookie passes v.
func RequireCookie(v CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(CookieName)
		if err != nil || !v.Verify(cookie.Value) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Detail: DetailInvalidCredentials,
			})
			return
		}
		c.Next()
	}
}

// SetAccessCookie issues the access_token cookie carrying value.
func SetAccessCookie(w http.ResponseWriter, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
