package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathblat/internal/app"
	"github.com/abhisek/mathblat/internal/config"
	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/transport"
)

// acceptor is a listener that hands over a single duel connection.
type acceptor interface {
	Accept(ctx context.Context) (transport.Conn, error)
	Close() error
}

var hostCmd = &cobra.Command{
	Use:         "host",
	Short:       "Host a duel and wait for an opponent to join",
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runHost,
}

func init() {
	hostCmd.Flags().Int("port", 0, "Port to listen on (defaults to network.port)")
	hostCmd.Flags().String("transport", "", "Transport: tcp or ws (defaults to network.transport)")
	hostCmd.Flags().String("tier", "", "Difficulty tier (defaults to --difficulty)")
}

func runHost(cmd *cobra.Command, args []string) error {
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		cfg.Network.Port = p
	}
	if t, _ := cmd.Flags().GetString("transport"); t != "" {
		cfg.Network.Transport = t
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rt, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	tier, err := tierFlag(cmd, rt.tier)
	if err != nil {
		return err
	}

	ln, where, err := listen(cfg)
	if err != nil {
		return err
	}
	defer ln.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := rt.newSession(ctx, rt.sessionConfig(duel.RoleHost, tier.Standard(), problemgen.CategoryArithmetic), nil)
	if err != nil {
		return err
	}
	s.Notify("Hosting on " + where)
	log.Info().Str("addr", where).Str("session_id", s.ID()).Msg("hosting duel")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		conn, err := ln.Accept(gctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.Notify("Could not accept opponent: " + err.Error())
			return err
		}
		if err := s.Attach(conn); err != nil {
			_ = conn.Close()
			if errors.Is(err, duel.ErrEnded) {
				return nil
			}
			return err
		}
		return nil
	})

	runErr := app.Run(app.Options{
		System:     rt.sys,
		Launch:     rt.launcher(ctx),
		PlayerName: rt.player,
		Tier:       rt.tier,
		Session:    s,
	})
	s.End(duel.ReasonQuit)
	cancel()
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("accept opponent")
	}
	return runErr
}

// listen binds the configured transport and returns the address an
// opponent should join.
func listen(c config.Config) (acceptor, string, error) {
	if c.Network.Transport == config.TransportWebSocket {
		ln, err := transport.ListenWS(c.ListenAddr(), c.Network.WSPath)
		if err != nil {
			return nil, "", err
		}
		return ln, ln.URL(), nil
	}
	ln, err := transport.Listen(c.ListenAddr())
	if err != nil {
		return nil, "", err
	}
	return ln, fmt.Sprintf("port %d", c.Network.Port), nil
}
