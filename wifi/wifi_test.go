package wifi

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

type fakeLink struct {
	activateErr error
	connectErr  error
	polls       int
	after       int // Connected turns true after this many polls, -1 never

	ssid, password string
}

func (f *fakeLink) Activate() error { return f.activateErr }

func (f *fakeLink) Connect(ssid, password string) error {
	f.ssid, f.password = ssid, password
	return f.connectErr
}

func (f *fakeLink) Connected() bool {
	f.polls++
	return f.after >= 0 && f.polls > f.after
}

func TestConnect(t *testing.T) {
	errRadio := errors.New("radio off")
	tests := []struct {
		name    string
		link    *fakeLink
		timeout time.Duration
		want    error
	}{
		{"immediate", &fakeLink{after: 0}, time.Second, nil},
		{"after a few polls", &fakeLink{after: 3}, time.Second, nil},
		{"timeout", &fakeLink{after: -1}, 50 * time.Millisecond, ErrTimeout},
		{"activate fails", &fakeLink{activateErr: errRadio}, time.Second, errRadio},
		{"connect fails", &fakeLink{connectErr: errRadio}, time.Second, errRadio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Connect(context.Background(), tt.link, "home", "secret", tt.timeout)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Connect() = %v, want %v", err, tt.want)
			}
			if tt.link.activateErr == nil && (tt.link.ssid != "home" || tt.link.password != "secret") {
				t.Errorf("link got (%q, %q), want (home, secret)", tt.link.ssid, tt.link.password)
			}
		})
	}
}

func TestConnectPolling(t *testing.T) {
	link := &fakeLink{after: -1}
	start := time.Now()
	if err := Connect(context.Background(), link, "x", "", 100*time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Connect() = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("gave up after %v, before the timeout", elapsed)
	}
	if link.polls < 3 {
		t.Errorf("polled %d times, want a poll about every %v", link.polls, pollInterval)
	}
}

func TestConnectCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Connect(ctx, &fakeLink{after: -1}, "x", "", time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("Connect() = %v, want context.Canceled", err)
	}
}

type call []string

func TestNMCLI(t *testing.T) {
	var calls []call
	status := "eth0:ethernet:connected\nwlan0:wifi:disconnected\nwlan1:wifi:connected\n"
	n := &NMCLI{
		Interface: "wlan0",
		Run: func(name string, args ...string) ([]byte, error) {
			calls = append(calls, append(call{name}, args...))
			if args[0] == "-t" {
				return []byte(status), nil
			}
			return nil, nil
		},
	}

	if err := n.Activate(); err != nil {
		t.Fatal(err)
	}
	if err := n.Connect("home", ""); err != nil {
		t.Fatal(err)
	}
	if n.Connected() {
		t.Error("wlan0 is disconnected")
	}
	want := []call{
		{"nmcli", "radio", "wifi", "on"},
		{"nmcli", "device", "wifi", "connect", "home", "ifname", "wlan0"},
		{"nmcli", "-t", "-f", "DEVICE,TYPE,STATE", "device"},
	}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %q, want %q", calls, want)
	}

	n.Interface = ""
	if !n.Connected() {
		t.Error("any Wi-Fi device connected should count")
	}
	status = "wlan0:wifi:connected\n"
	n.Interface = "wlan0"
	if !n.Connected() {
		t.Error("wlan0 is connected")
	}
}

func TestNMCLIPasswordFile(t *testing.T) {
	tests := []struct {
		name    string
		iface   string
		profile bool
		want    []call
	}{
		{
			name:  "new profile",
			iface: "wlan0",
			want: []call{
				{"nmcli", "connection", "show", "id", "home"},
				{"nmcli", "connection", "add", "type", "wifi", "con-name", "home", "ifname", "wlan0",
					"ssid", "home", "wifi-sec.key-mgmt", "wpa-psk", "wifi-sec.psk-flags", "2"},
				{"nmcli", "connection", "up", "id", "home", "passwd-file", "<file>", "ifname", "wlan0"},
			},
		},
		{
			name:    "existing profile",
			profile: true,
			want: []call{
				{"nmcli", "connection", "show", "id", "home"},
				{"nmcli", "connection", "up", "id", "home", "passwd-file", "<file>"},
			},
		},
		{
			name: "any interface",
			want: []call{
				{"nmcli", "connection", "show", "id", "home"},
				{"nmcli", "connection", "add", "type", "wifi", "con-name", "home", "ifname", "*",
					"ssid", "home", "wifi-sec.key-mgmt", "wpa-psk", "wifi-sec.psk-flags", "2"},
				{"nmcli", "connection", "up", "id", "home", "passwd-file", "<file>"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []call
			var path, content string
			n := &NMCLI{
				Interface: tt.iface,
				Run: func(name string, args ...string) ([]byte, error) {
					c := append(call{name}, args...)
					for i, a := range args {
						if strings.Contains(a, "secret") {
							t.Errorf("password on argv: %q", c)
						}
						if a == "passwd-file" && i+1 < len(args) {
							path = args[i+1]
							b, err := os.ReadFile(path)
							if err != nil {
								t.Fatalf("reading passwd-file: %v", err)
							}
							content = string(b)
							if fi, err := os.Stat(path); err == nil && fi.Mode().Perm()&0o077 != 0 {
								t.Errorf("passwd-file mode = %v, want owner only", fi.Mode().Perm())
							}
							c[i+2] = "<file>"
						}
					}
					calls = append(calls, c)
					if args[1] == "show" && !tt.profile {
						return []byte("Error: home - no such connection profile."), errors.New("exit status 10")
					}
					return nil, nil
				},
			}

			if err := n.Connect("home", "secret"); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(calls, tt.want) {
				t.Errorf("calls = %q, want %q", calls, tt.want)
			}
			if content != "802-11-wireless-security.psk:secret\n" {
				t.Errorf("passwd-file = %q", content)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Errorf("passwd-file %s left behind", path)
			}
		})
	}
}

func TestNMCLIError(t *testing.T) {
	n := &NMCLI{Run: func(string, ...string) ([]byte, error) {
		return []byte("Error: No network with SSID 'home' found.\n"), errors.New("exit status 10")
	}}
	err := n.Connect("home", "")
	if err == nil {
		t.Fatal("Connect() should fail")
	}
	if got, want := err.Error(), "nmcli device: exit status 10: Error: No network with SSID 'home' found."; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if n.Connected() {
		t.Error("Connected() should be false when nmcli fails")
	}
}
