// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package logging

import (
	"fmt"
	"io"
	"log/syslog"
)

// SyslogConfig describes an optional forwarding sink for control-plane log
// lines. The data plane never logs (spec.md §7), so this only ever carries
// table mutations, interface attach/detach, and config reload events.
type SyslogConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Protocol string
	Tag      string
	Facility int
}

// DefaultSyslogConfig returns a disabled config with the defaults applied
// by NewSyslogWriter when a field is left zero.
func DefaultSyslogConfig() SyslogConfig {
	return SyslogConfig{
		Enabled:  false,
		Port:     514,
		Protocol: "udp",
		Tag:      "sentrywall",
		Facility: 1,
	}
}

// severityFromFacility maps the configured numeric facility onto a
// syslog.Priority, defaulting to LOG_LOCAL0 when out of the standard range.
func severityFromFacility(facility int) syslog.Priority {
	switch facility {
	case 0:
		return syslog.LOG_KERN
	case 1:
		return syslog.LOG_USER
	case 2:
		return syslog.LOG_MAIL
	case 3:
		return syslog.LOG_DAEMON
	default:
		return syslog.LOG_LOCAL0
	}
}

// NewSyslogWriter dials a remote syslog daemon and returns an io.Writer
// suitable for slog.NewTextHandler. Host is required; Port, Protocol, and
// Tag default per DefaultSyslogConfig when left zero. Facility is used as
// given, so a zero Facility selects LOG_KERN.
func NewSyslogWriter(cfg SyslogConfig) (io.Writer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("logging: syslog host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 514
	}
	if cfg.Protocol == "" {
		cfg.Protocol = "udp"
	}
	if cfg.Tag == "" {
		cfg.Tag = "sentrywall"
	}

	priority := severityFromFacility(cfg.Facility) | syslog.LOG_INFO
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	w, err := syslog.Dial(cfg.Protocol, addr, priority, cfg.Tag)
	if err != nil {
		return nil, fmt.Errorf("logging: dial syslog %s://%s: %w", cfg.Protocol, addr, err)
	}
	return w, nil
}
