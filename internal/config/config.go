package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/klokku/docket/pkg/stats"
	"github.com/klokku/docket/pkg/view"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "DOCKET_"

var ErrInvalidConfig = errors.New("invalid configuration")

type Application struct {
	Server   Server   `koanf:"server"`
	Calendar Calendar `koanf:"calendar"`
	Seed     Seed     `koanf:"seed"`
}

type Server struct {
	Addr         string `koanf:"addr"`
	ReadTimeout  int    `koanf:"readtimeout"`
	WriteTimeout int    `koanf:"writetimeout"`
	IdleTimeout  int    `koanf:"idletimeout"`
}

type Calendar struct {
	WeekStart         string `koanf:"weekstart"`
	UpcomingLimit     int    `koanf:"upcominglimit"`
	WeekDayEventLimit int    `koanf:"weekdayeventlimit"`
	DayStartHour      int    `koanf:"daystarthour"`
	DayEndHour        int    `koanf:"dayendhour"`
}

type Seed struct {
	Demo bool   `koanf:"demo"`
	Path string `koanf:"path"`
}

func Defaults() Application {
	opts := view.DefaultOptions()
	return Application{
		Server: Server{
			Addr:         ":8181",
			ReadTimeout:  15,
			WriteTimeout: 15,
			IdleTimeout:  60,
		},
		Calendar: Calendar{
			WeekStart:         strings.ToLower(opts.WeekStart.String()),
			UpcomingLimit:     stats.DefaultUpcomingLimit,
			WeekDayEventLimit: opts.WeekDayEventLimit,
			DayStartHour:      opts.DayStartHour,
			DayEndHour:        opts.DayEndHour,
		},
		Seed: Seed{
			Demo: true,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// DOCKET_CALENDAR_UPCOMINGLIMIT -> calendar.upcominglimit
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	if err := app.Validate(); err != nil {
		return Application{}, err
	}

	return app, nil
}

func (a Application) Validate() error {
	var errs []error
	if a.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if a.Server.ReadTimeout < 0 || a.Server.WriteTimeout < 0 || a.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	if _, err := ParseWeekday(a.Calendar.WeekStart); err != nil {
		errs = append(errs, err)
	}
	if a.Calendar.UpcomingLimit <= 0 {
		errs = append(errs, fmt.Errorf("calendar.upcominglimit must be positive, got %d", a.Calendar.UpcomingLimit))
	}
	if a.Calendar.WeekDayEventLimit <= 0 {
		errs = append(errs, fmt.Errorf("calendar.weekdayeventlimit must be positive, got %d", a.Calendar.WeekDayEventLimit))
	}
	if a.Calendar.DayStartHour < 0 || a.Calendar.DayEndHour > 23 || a.Calendar.DayStartHour > a.Calendar.DayEndHour {
		errs = append(errs, fmt.Errorf("calendar day hours must satisfy 0 <= start <= end <= 23, got %d..%d",
			a.Calendar.DayStartHour, a.Calendar.DayEndHour))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParseWeekday accepts an English weekday name in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("calendar.weekstart: unknown weekday %q", s)
}

// ViewOptions returns the projection options. The configuration must be valid.
func (a Application) ViewOptions() view.Options {
	weekStart, _ := ParseWeekday(a.Calendar.WeekStart)
	return view.Options{
		WeekStart:         weekStart,
		WeekDayEventLimit: a.Calendar.WeekDayEventLimit,
		DayStartHour:      a.Calendar.DayStartHour,
		DayEndHour:        a.Calendar.DayEndHour,
	}
}

func (s Server) Timeouts() (read, write, idle time.Duration) {
	return time.Duration(s.ReadTimeout) * time.Second,
		time.Duration(s.WriteTimeout) * time.Second,
		time.Duration(s.IdleTimeout) * time.Second
}
