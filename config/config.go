// Package config reads the JSON configuration of the example programs.
//
// A minimal file names the Wi-Fi network and the server to check:
//
//	{
//		"Wifi": {"SSID": "home", "Password": "secret"},
//		"Server": {"IP": "10.0.0.20", "Port": 5000}
//	}
//
// An optional "Display" object describes how the panel is wired; every field
// has a default.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

// ErrMissingKey is returned when a required key is absent.
var ErrMissingKey = errors.New("config: missing key")

// Config is the whole configuration file.
type Config struct {
	Wifi    Wifi
	Server  Server
	Display Display
}

// Wifi holds the network credentials.
type Wifi struct {
	SSID     string
	Password string
}

// Server is the host answering the health check.
type Server struct {
	IP   string
	Port Port
}

// URL returns the base URL of the server.
func (s Server) URL() string {
	return "http://" + net.JoinHostPort(s.IP, strconv.Itoa(int(s.Port)))
}

// Port is a TCP port. It decodes from a JSON number or a numeric string.
type Port int

// UnmarshalJSON implements json.Unmarshaler.
func (p *Port) UnmarshalJSON(b []byte) error {
	var n int
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid port %q", s)
		}
		n = v
	} else if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid port %s", b)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port %d out of range", n)
	}
	*p = Port(n)
	return nil
}

// Display describes the panel and the pins it is wired to. Pin names are
// looked up in the GPIO registry; an empty CS means the SPI port drives chip
// select, an empty BL means no backlight control.
type Display struct {
	Width       int
	Height      int
	Orientation int // 0 to 3, clockwise
	RowOffset   int
	ColOffset   int
	SPI         string // SPI port name, empty for the default
	Hz          int64  // SPI clock, 0 for the driver default
	DC          string
	CS          string
	RST         string
	BL          string
}

// raw mirrors Config with pointers so that absent keys can be told apart from
// empty values.
type raw struct {
	Wifi *struct {
		SSID     *string
		Password *string
	}
	Server *struct {
		IP   *string
		Port *Port
	}
	Display *Display
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(b)
}

// Parse parses a JSON configuration and applies defaults.
func Parse(data []byte) (*Config, error) {
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch {
	case r.Wifi == nil:
		return nil, fmt.Errorf("%w: Wifi", ErrMissingKey)
	case r.Wifi.SSID == nil:
		return nil, fmt.Errorf("%w: Wifi.SSID", ErrMissingKey)
	case r.Wifi.Password == nil:
		return nil, fmt.Errorf("%w: Wifi.Password", ErrMissingKey)
	case r.Server == nil:
		return nil, fmt.Errorf("%w: Server", ErrMissingKey)
	case r.Server.IP == nil:
		return nil, fmt.Errorf("%w: Server.IP", ErrMissingKey)
	case r.Server.Port == nil:
		return nil, fmt.Errorf("%w: Server.Port", ErrMissingKey)
	}

	c := &Config{
		Wifi:   Wifi{SSID: *r.Wifi.SSID, Password: *r.Wifi.Password},
		Server: Server{IP: *r.Server.IP, Port: *r.Server.Port},
	}
	if r.Display != nil {
		c.Display = *r.Display
	}
	applyDefaults(c)

	if o := c.Display.Orientation; o < 0 || o > 3 {
		return nil, fmt.Errorf("config: invalid display orientation %d", o)
	}
	return c, nil
}

// applyDefaults fills in missing display values
func applyDefaults(c *Config) {
	d := &c.Display
	if d.Width == 0 {
		d.Width = 128
	}
	if d.Height == 0 {
		d.Height = 160
	}
	if d.DC == "" {
		d.DC = "GPIO25"
	}
	if d.RST == "" {
		d.RST = "GPIO24"
	}
}
