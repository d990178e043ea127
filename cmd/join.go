package cmd

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathblat/internal/config"
	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/transport"
)

var joinCmd = &cobra.Command{
	Use:   "join HOST[:PORT]",
	Short: "Join a duel hosted by another player",
	Long: `Connect to a hosting player and start the duel. The address may be a
host:port pair or a ws:// URL. If the host cannot be reached the game falls
back to solo practice.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationTUI: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if t, _ := cmd.Flags().GetString("transport"); t != "" {
			cfg.Network.Transport = t
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		target := joinTarget(args[0], cfg)

		return runApp(cmd, func(rt *appDeps) (*duel.Session, error) {
			tier, err := tierFlag(cmd, rt.tier)
			if err != nil {
				return nil, err
			}
			tier = tier.Standard()
			ctx := cmd.Context()

			fmt.Fprintf(cmd.ErrOrStderr(), "Connecting to %s...\n", target)
			conn, err := dialPeer(ctx, target, cfg)
			if err != nil {
				log.Warn().Err(err).Str("target", target).Msg("connect failed, playing solo")
				s, serr := rt.newSession(ctx, rt.sessionConfig(duel.RoleSolo, tier, problemgen.CategoryArithmetic), nil)
				if serr != nil {
					return nil, serr
				}
				s.Notify(fmt.Sprintf("Could not reach %s. Playing solo.", target))
				return s, nil
			}
			return rt.newSession(ctx, rt.sessionConfig(duel.RoleClient, tier, problemgen.CategoryArithmetic), conn)
		})
	},
}

func init() {
	joinCmd.Flags().String("transport", "", "Transport: tcp or ws (defaults to network.transport)")
	joinCmd.Flags().String("tier", "", "Difficulty tier credited for this player's answers")
}

// joinTarget normalizes a join argument. A bare host gets the configured
// port. With the websocket transport a host:port becomes a ws:// URL.
func joinTarget(arg string, c config.Config) string {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "ws://") || strings.HasPrefix(arg, "wss://") {
		return arg
	}
	if _, _, err := net.SplitHostPort(arg); err != nil {
		arg = net.JoinHostPort(arg, strconv.Itoa(c.Network.Port))
	}
	if c.Network.Transport == config.TransportWebSocket {
		return "ws://" + arg + c.Network.WSPath
	}
	return arg
}

// dialPeer connects over TCP or websocket depending on target.
func dialPeer(ctx context.Context, target string, c config.Config) (transport.Conn, error) {
	opts := transport.DefaultDialOptions()
	opts.Timeout = c.Network.ConnectTimeout
	opts.Attempts = c.Network.ConnectAttempts

	if strings.HasPrefix(target, "ws://") || strings.HasPrefix(target, "wss://") {
		return transport.DialWS(ctx, target, opts)
	}
	return transport.Dial(ctx, target, opts)
}
