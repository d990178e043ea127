package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathblat/internal/app"
	"github.com/abhisek/mathblat/internal/config"
	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/store"
	"github.com/abhisek/mathblat/internal/store/redisboard"
	"github.com/abhisek/mathblat/internal/system"
	"github.com/abhisek/mathblat/internal/transport"
)

// appDeps bundles what a command needs once the store is open.
type appDeps struct {
	sys    *system.System
	player string
	tier   problemgen.Tier
	close  func()
}

// buildSystem opens the store, picks the score backend and assembles the
// shared system context.
func buildSystem(ctx context.Context, c config.Config) (*system.System, func(), error) {
	dbPath, err := resolveDBPath(c)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	cleanup := func() { _ = st.Close() }

	scores := st.ScoreRepo()
	if c.Storage.ScoresBackend == config.BackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		board := redisboard.New(client, c.Redis.Key)
		if err := board.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", c.Redis.Addr).Msg("redis unreachable, high scores will be degraded")
		}
		scores = board
		cleanup = func() {
			_ = client.Close()
			_ = st.Close()
		}
	}

	sys, err := system.New(system.Options{
		Generator:     problemgen.New(),
		Scores:        scores,
		Settings:      st.SettingsRepo(),
		Events:        st.EventRepo(),
		ScoresBackend: c.Storage.ScoresBackend,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("init system: %w", err)
	}
	return sys, cleanup, nil
}

// openDeps builds the system and resolves the player name and default
// tier for cmd.
func openDeps(cmd *cobra.Command) (*appDeps, error) {
	ctx := cmd.Context()
	sys, cleanup, err := buildSystem(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tier, err := problemgen.ParseTier(cfg.Game.Difficulty)
	if err != nil {
		cleanup()
		return nil, err
	}

	player := cfg.Game.PlayerName
	if !cmd.Flags().Changed("name") {
		player = system.LoadSetting(ctx, sys, system.CategoryGame, "LastPlayerName", player).Value
	}
	return &appDeps{sys: sys, player: player, tier: tier.Standard(), close: cleanup}, nil
}

// sessionConfig maps the game section of the config onto a duel config.
func (rt *appDeps) sessionConfig(role duel.Role, tier problemgen.Tier, cat problemgen.Category) duel.Config {
	return duel.Config{
		Role:         role,
		Tier:         tier,
		Category:     cat,
		RoundSeconds: cfg.Game.RoundSeconds,
		ResolveDelay: cfg.Game.ResolveDelay,
		TickInterval: cfg.Game.TickInterval,
		PlayerName:   rt.player,
	}
}

// newSession creates a session wired to the system's generator and event
// recorder. peer may be nil; it is closed if the session cannot be built.
func (rt *appDeps) newSession(ctx context.Context, dc duel.Config, peer transport.Conn) (*duel.Session, error) {
	s, err := duel.New(dc, duel.Deps{
		Source:   rt.sys.Generator(),
		Peer:     peer,
		Recorder: rt.sys.DuelRecorder(ctx),
	})
	if err != nil {
		if peer != nil {
			_ = peer.Close()
		}
		return nil, err
	}
	return s, nil
}

// launcher starts solo and teacher sessions from the home screen.
func (rt *appDeps) launcher(ctx context.Context) func(problemgen.Tier, problemgen.Category) (*duel.Session, error) {
	return func(tier problemgen.Tier, cat problemgen.Category) (*duel.Session, error) {
		return rt.newSession(ctx, rt.sessionConfig(duel.RoleSolo, tier, cat), nil)
	}
}

// runApp launches the TUI, optionally straight into a session built by
// open. The dependencies are released when the TUI exits.
func runApp(cmd *cobra.Command, open func(rt *appDeps) (*duel.Session, error)) error {
	rt, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	opts := app.Options{
		System:     rt.sys,
		Launch:     rt.launcher(cmd.Context()),
		PlayerName: rt.player,
		Tier:       rt.tier,
	}
	if open != nil {
		s, err := open(rt)
		if err != nil {
			return err
		}
		opts.Session = s
	}
	return app.Run(opts)
}
