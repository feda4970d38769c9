package wifi

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// NMCLI drives NetworkManager through the nmcli command.
type NMCLI struct {
	// Interface restricts the link to one device, e.g. "wlan0". Empty means
	// any Wi-Fi device.
	Interface string

	// Run executes a command and returns its combined output. nil runs the
	// real binary.
	Run func(name string, args ...string) ([]byte, error)
}

var _ Link = (*NMCLI)(nil)

func (n *NMCLI) run(args ...string) ([]byte, error) {
	run := n.Run
	if run == nil {
		run = func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		}
	}
	out, err := run("nmcli", args...)
	if err != nil {
		return out, fmt.Errorf("nmcli %s: %w: %s", args[0], err, bytes.TrimSpace(out))
	}
	return out, nil
}

// Activate implements Link.
func (n *NMCLI) Activate() error {
	_, err := n.run("radio", "wifi", "on")
	return err
}

// Connect implements Link.
//
// Open networks are joined directly. For WPA-PSK networks the password never
// reaches the nmcli argv: Connect keeps a profile named after the SSID whose
// key is not saved, and hands the key over through a private passwd-file
// while bringing the profile up.
func (n *NMCLI) Connect(ssid, password string) error {
	if password == "" {
		args := []string{"device", "wifi", "connect", ssid}
		if n.Interface != "" {
			args = append(args, "ifname", n.Interface)
		}
		_, err := n.run(args...)
		return err
	}

	if _, err := n.run("connection", "show", "id", ssid); err != nil {
		ifname := n.Interface
		if ifname == "" {
			ifname = "*"
		}
		// psk-flags 2: the key is requested at activation, never stored.
		if _, err := n.run("connection", "add", "type", "wifi", "con-name", ssid, "ifname", ifname,
			"ssid", ssid, "wifi-sec.key-mgmt", "wpa-psk", "wifi-sec.psk-flags", "2"); err != nil {
			return err
		}
	}

	f, err := os.CreateTemp("", "nmcli-passwd-*")
	if err != nil {
		return fmt.Errorf("wifi: passwd-file: %w", err)
	}
	defer os.Remove(f.Name())
	_, err = fmt.Fprintf(f, "802-11-wireless-security.psk:%s\n", password)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("wifi: passwd-file: %w", err)
	}

	args := []string{"connection", "up", "id", ssid, "passwd-file", f.Name()}
	if n.Interface != "" {
		args = append(args, "ifname", n.Interface)
	}
	_, err = n.run(args...)
	return err
}

// Connected implements Link.
func (n *NMCLI) Connected() bool {
	out, err := n.run("-t", "-f", "DEVICE,TYPE,STATE", "device")
	if err != nil {
		return false
	}
	s := bufio.NewScanner(bytes.NewReader(out))
	for s.Scan() {
		f := strings.Split(s.Text(), ":")
		if len(f) != 3 || f[1] != "wifi" {
			continue
		}
		if n.Interface != "" && f[0] != n.Interface {
			continue
		}
		if f[2] == "connected" {
			return true
		}
	}
	return false
}
