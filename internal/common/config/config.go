package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

type HTTP struct {
	Port int
}

type DB struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type MQ struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Sessions struct {
	TTLHours int
}

type App struct {
	HTTP     HTTP
	Database DB
	Rabbit   MQ
	Sessions Sessions
}

// DatabaseConfigured reports whether a database section was present.
// Without one the assistant runs on the in-memory order ledger.
func (a App) DatabaseConfigured() bool { return a.Database.Host != "" }

// RabbitConfigured reports whether kitchen ticket publishing is enabled.
func (a App) RabbitConfigured() bool { return a.Rabbit.Host != "" }

// Load reads a two-level section/key config file. Same minimal format the
// rest of our deploys use; no external YAML dependency.
func Load(path string) (App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return App{}, err
	}

	a := App{
		HTTP:     HTTP{Port: 3000},
		Sessions: Sessions{TTLHours: 12},
	}
	a.Database.Port = 5432
	a.Rabbit.Port = 5672
	a.Rabbit.VHost = "/"

	var section string
	for _, ln := range strings.Split(string(b), "\n") {
		line := strings.TrimSpace(ln)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		switch section {
		case "http":
			if k == "port" {
				a.HTTP.Port = atoi(v, a.HTTP.Port)
			}
		case "database":
			assignDB(&a.Database, k, v)
		case "rabbitmq":
			assignMQ(&a.Rabbit, k, v)
		case "sessions":
			if k == "ttl_hours" {
				a.Sessions.TTLHours = atoi(v, a.Sessions.TTLHours)
			}
		}
	}

	if a.DatabaseConfigured() && (a.Database.User == "" || a.Database.Database == "") {
		return App{}, errors.New("database config incomplete: user and database are required")
	}
	if a.RabbitConfigured() && a.Rabbit.User == "" {
		return App{}, errors.New("rabbitmq config incomplete: user is required")
	}
	return a, nil
}

func assignDB(d *DB, k, v string) {
	switch k {
	case "host":
		d.Host = v
	case "port":
		d.Port = atoi(v, d.Port)
	case "user":
		d.User = v
	case "password":
		d.Password = v
	case "database":
		d.Database = v
	}
}

func assignMQ(m *MQ, k, v string) {
	switch k {
	case "host":
		m.Host = v
	case "port":
		m.Port = atoi(v, m.Port)
	case "user":
		m.User = v
	case "password":
		m.Password = v
	case "vhost":
		if v != "" {
			m.VHost = v
		}
	}
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// FindConfig returns the first config path that exists.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
