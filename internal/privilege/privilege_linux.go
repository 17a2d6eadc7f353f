// Package privilege implements the post-init hardening step the
// specification treats as an external collaborator: a check that the
// process holds the capabilities its raw-socket sender and listener
// require before any command is run.
package privilege

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dlrobertson-labs/ndhijack/internal/ndp"
)

const (
	capNetAdmin = 12
	capNetRaw   = 13
)

// statusPath is overridden by tests so Require can be exercised against a
// fixture file instead of the real /proc/self/status.
var statusPath = "/proc/self/status"

// Require checks that the process can open raw AF_PACKET sockets and bind
// them to a named interface: either euid 0, or CAP_NET_RAW together with
// CAP_NET_ADMIN. It returns a *ndp.Error with kind PermissionDenied when
// neither condition holds.
func Require() error {
	const op = "privilege.Require"

	if os.Geteuid() == 0 {
		return nil
	}

	rawOK, err := hasCap(capNetRaw)
	if err != nil {
		return wrapStatusErr(op, err)
	}
	adminOK, err := hasCap(capNetAdmin)
	if err != nil {
		return wrapStatusErr(op, err)
	}

	if !rawOK || !adminOK {
		return &ndp.Error{
			Kind: ndp.ErrPermissionDenied,
			Op:   op,
			Err:  fmt.Errorf("requires CAP_NET_RAW and CAP_NET_ADMIN (or root); grant with: sudo setcap cap_net_raw,cap_net_admin+ep <binary>"),
		}
	}
	return nil
}

func wrapStatusErr(op string, err error) error {
	return &ndp.Error{Kind: ndp.ErrSyscallFailed, Op: op, Err: err}
}

// hasCap reports whether bit is set in the process's effective capability
// set, read from /proc/self/status's "CapEff:" line.
func hasCap(bit int) (bool, error) {
	f, err := os.Open(statusPath)
	if err != nil {
		return false, err
	}
	defer f.Close()

	var capEffStr string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "CapEff:") {
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				capEffStr = fields[1]
				break
			}
		}
	}
	if capEffStr == "" {
		return false, errors.New("CapEff not found in " + statusPath)
	}

	val, err := strconv.ParseUint(capEffStr, 16, 64)
	if err != nil {
		return false, err
	}
	return (val & (1 << uint(bit))) != 0, nil
}
