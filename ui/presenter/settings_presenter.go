package presenter

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/glyphpad/config"
)

// Reconfigurer is the classifier client seen by the settings form.
type Reconfigurer interface {
	Reconfigure(baseURL string, timeout time.Duration) error
}

// TimeoutSetter receives the request deadline.
type TimeoutSetter interface {
	SetTimeout(d time.Duration)
}

// SettingsPresenter applies the service settings form. The shared config is
// only changed, and only saved, once the client accepted the new values.
type SettingsPresenter struct {
	cfg    *config.Config
	path   string
	client Reconfigurer
	submit TimeoutSetter
	notify Notifier
	logger *slog.Logger
}

func NewSettingsPresenter(cfg *config.Config, path string, client Reconfigurer, submit TimeoutSetter, notify Notifier, logger *slog.Logger) *SettingsPresenter {
	return &SettingsPresenter{cfg: cfg, path: path, client: client, submit: submit, notify: notify, logger: logger}
}

// Apply validates the form values and pushes them to the client and the
// submit deadline. Blank or malformed timeout text keeps the current value.
func (p *SettingsPresenter) Apply(endpoint, timeout string) error {
	if p == nil || p.cfg == nil {
		return nil
	}
	next := *p.cfg
	if ep := strings.TrimSpace(endpoint); ep != "" {
		next.Endpoint = ep
	}
	if secs, ok := parseIntField(timeout); ok && secs > 0 {
		next.RequestTimeoutSeconds = secs
	}
	if err := next.Validate(); err != nil {
		p.reject(err)
		return err
	}
	if p.client != nil {
		if err := p.client.Reconfigure(next.Endpoint, next.RequestTimeout()); err != nil {
			p.reject(err)
			return err
		}
	}
	if p.submit != nil {
		p.submit.SetTimeout(next.RequestTimeout())
	}
	*p.cfg = next
	if p.path == "" {
		return nil
	}
	if err := p.cfg.Save(p.path); err != nil {
		if p.logger != nil {
			p.logger.Error("config save failed", "path", p.path, "error", err)
		}
		if p.notify != nil {
			p.notify.Notify("Settings", "Settings applied but could not be saved: "+err.Error())
		}
		return err
	}
	if p.logger != nil {
		p.logger.Info("config saved", "path", p.path)
	}
	return nil
}

func (p *SettingsPresenter) reject(err error) {
	if p.logger != nil {
		p.logger.Warn("settings rejected", "error", err)
	}
	if p.notify != nil {
		p.notify.Notify("Settings", "Invalid settings: "+err.Error())
	}
}

func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
