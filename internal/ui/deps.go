package ui

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/refresh"
	"github.com/AdnanMGHaider/pennywise-cli/internal/session"
)

// deps is everything a page needs to do its job. Pages never reach for
// globals; tests build deps around a fake backend.
type deps struct {
	api     *api.Client
	session *session.Store
	refresh *refresh.Signal
	log     *logrus.Logger
	timeout time.Duration
	now     func() time.Time
}

// reqCtx is the per-request deadline. A hung backend fails the request
// instead of pinning a page in its loading state.
func (d deps) reqCtx() (context.Context, context.CancelFunc) {
	timeout := d.timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (d deps) token() string {
	return d.session.Token()
}

func (d deps) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}
