package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "diary_flash"

// Flash is a one-shot message shown on the next rendered page. Category maps
// to a presentation style: "success", "info" or "danger".
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func setFlashes(w http.ResponseWriter, flashes []Flash) {
	if len(flashes) == 0 {
		return
	}
	payload, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlashes returns pending flashes and clears the cookie. A cookie that
// fails to decode is silently discarded.
func popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	payload, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}
	return flashes
}
