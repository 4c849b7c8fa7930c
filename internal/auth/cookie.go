package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "token"

// jsonCookiePrefix marks an object-valued cookie, as written by Express's
// res.cookie. Browser clients of the older API already send this form.
const jsonCookiePrefix = "j:"

// Session is the object stored in the session cookie.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// EncodeSession renders s as a cookie value: "j:" + JSON, URL-escaped.
func EncodeSession(s Session) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("auth: encoding session cookie: %w", err)
	}
	return url.QueryEscape(jsonCookiePrefix + string(b)), nil
}

// DecodeSession parses a cookie value written by EncodeSession. A value
// without the "j:" prefix is taken as a bare token.
func DecodeSession(value string) (Session, error) {
	raw, err := url.QueryUnescape(value)
	if err != nil {
		return Session{}, fmt.Errorf("auth: unescaping session cookie: %w", err)
	}

	if !strings.HasPrefix(raw, jsonCookiePrefix) {
		if raw == "" {
			return Session{}, errors.New("auth: empty session cookie")
		}
		return Session{Token: raw}, nil
	}

	var s Session
	if err := json.Unmarshal([]byte(strings.TrimPrefix(raw, jsonCookiePrefix)), &s); err != nil {
		return Session{}, fmt.Errorf("auth: decoding session cookie: %w", err)
	}
	if s.Token == "" {
		return Session{}, errors.New("auth: session cookie has no token")
	}
	return s, nil
}

// SetSessionCookie writes the HttpOnly session cookie.
func SetSessionCookie(w http.ResponseWriter, s Session, secure bool) error {
	value, err := EncodeSession(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
