// Package flash carries one-shot notifications across redirects.
//
// Mutations in this app follow POST → redirect → GET; the success or error
// message from the backend rides the session as a flash and is rendered as a
// dismissable notice on the next page. Nothing here blocks or crashes the
// view: a notice is the strongest reaction any error gets, except 401 which
// forces re-login.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/google/uuid"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
)

// Kind classifies a notice for styling.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Notice is one dismissable notification.
type Notice struct {
	ID   string
	Kind Kind
	Text string
}

func init() {
	gob.Register(Notice{})
}

// Add queues a notice for the next rendered page. Silently a no-op when the
// session store is not initialized (tests without cookies).
func Add(w http.ResponseWriter, r *http.Request, kind Kind, text string) {
	if auth.Store == nil {
		return
	}
	sess, _ := auth.Store.Get(r, auth.SessionName)
	sess.AddFlash(Notice{ID: uuid.NewString(), Kind: kind, Text: text})
	_ = sess.Save(r, w)
}

// Take pops and returns all queued notices.
func Take(w http.ResponseWriter, r *http.Request) []Notice {
	if auth.Store == nil {
		return nil
	}
	sess, _ := auth.Store.Get(r, auth.SessionName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	notices := make([]Notice, 0, len(raw))
	for _, v := range raw {
		if n, ok := v.(Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}
