package connect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/elephantatech/QR-Network-Scanner/hlog"
	"github.com/elephantatech/QR-Network-Scanner/internal/history"
	"github.com/elephantatech/QR-Network-Scanner/internal/mynet"
	"github.com/elephantatech/QR-Network-Scanner/pkg/netsetup"
	"github.com/elephantatech/QR-Network-Scanner/pkg/wifiqr"
)

var ErrJoinFailed = errors.New("failed to connect")

const PasswordHint = "You might need to check your password or signal strength."

// Network is the OS side of a join, implemented by *netsetup.Manager.
type Network interface {
	AddNetwork(ctx context.Context, ssid, password string, security wifiqr.Security, hidden bool) netsetup.Result
	CurrentNetwork(ctx context.Context) (string, bool)
	Activate(ctx context.Context, ssid, password string) netsetup.Result
}

// Recorder keeps track of join attempts, implemented by *history.Store.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (int64, error)
}

var (
	_ Network  = (*netsetup.Manager)(nil)
	_ Recorder = (*history.Store)(nil)
)

// Outcome reports what Join did. It never carries the password.
type Outcome struct {
	SSID             string       `json:"ssid" yaml:"ssid"`
	Security         string       `json:"security" yaml:"security"`
	Hidden           bool         `json:"hidden" yaml:"hidden"`
	Added            bool         `json:"added" yaml:"added"`
	AddOutput        string       `json:"add_output,omitempty" yaml:"add_output,omitempty"`
	AlreadyConnected bool         `json:"already_connected" yaml:"already_connected"`
	Joined           bool         `json:"joined" yaml:"joined"`
	Output           string       `json:"output,omitempty" yaml:"output,omitempty"`
	Hint             string       `json:"hint,omitempty" yaml:"hint,omitempty"`
	Route            *mynet.Route `json:"route,omitempty" yaml:"route,omitempty"`
}

type Joiner struct {
	Network Network
	History Recorder                                // optional
	Route   func(logr.Logger) (*mynet.Route, error) // optional, probed after joining
}

// Join adds cred to the preferred networks and joins it. A failure to add is
// logged and the join is attempted anyway. source tells where the QR code
// came from and is only used for the history.
func (j *Joiner) Join(ctx context.Context, cred wifiqr.Credential, source string) (*Outcome, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("connect")

	out := &Outcome{
		SSID:     cred.SSID,
		Security: cred.SecurityType,
		Hidden:   cred.Hidden,
	}

	add := j.Network.AddNetwork(ctx, cred.SSID, cred.Password, cred.Security(), cred.Hidden)
	out.Added = add.Success
	if !add.Success {
		out.AddOutput = strings.TrimSpace(add.Output)
		log.Error(nil, "Failed to add network", "ssid", cred.SSID, "output", out.AddOutput)
	}

	var err error
	if current, ok := j.Network.CurrentNetwork(ctx); ok && current == cred.SSID {
		log.Info("Already connected", "ssid", cred.SSID)
		out.AlreadyConnected = true
		out.Joined = true
	} else {
		r := j.Network.Activate(ctx, cred.SSID, cred.Password)
		out.Joined = r.Success
		out.Output = strings.TrimSpace(r.Output)
		if !r.Success {
			if strings.Contains(r.Output, "Error") {
				out.Hint = PasswordHint
			}
			err = fmt.Errorf("%w to %s: %s", ErrJoinFailed, cred.SSID, out.Output)
			if cerr := ctx.Err(); cerr != nil {
				err = fmt.Errorf("%w to %s: %w", ErrJoinFailed, cred.SSID, cerr)
			}
		}
	}

	if out.Joined && j.Route != nil {
		route, rerr := j.Route(log)
		if rerr != nil {
			log.V(1).Info("No route after joining", "error", rerr)
		} else {
			out.Route = route
		}
	}

	j.record(ctx, log, out, source)
	return out, err
}

func (j *Joiner) record(ctx context.Context, log logr.Logger, out *Outcome, source string) {
	if j.History == nil {
		return
	}
	message := out.Output
	if !out.Joined && message == "" {
		message = out.AddOutput
	}
	_, err := j.History.Record(ctx, history.Entry{
		SSID:     out.SSID,
		Security: out.Security,
		Hidden:   out.Hidden,
		Source:   source,
		Added:    out.Added,
		Joined:   out.Joined,
		Message:  message,
	})
	hlog.ErrorIfNotCanceled(log, err, "Failed to record join", "ssid", out.SSID)
}
