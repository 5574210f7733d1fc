package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	conf "github.com/latinogino/prestashop-mcp/internal/config"
	"github.com/latinogino/prestashop-mcp/internal/db"
	"github.com/latinogino/prestashop-mcp/internal/integrations"
	"github.com/latinogino/prestashop-mcp/internal/integrations/prestashop"
	logs "github.com/latinogino/prestashop-mcp/internal/logs"
	"github.com/latinogino/prestashop-mcp/internal/metrics"
	syncer "github.com/latinogino/prestashop-mcp/internal/syncer"
)

// override with -ldflags "-X 'main.ver=1.0.1'"
var ver = "1.0.0"

func main() {
	fs := conf.Flags()
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *showVersion {
		fmt.Fprintln(os.Stderr, "prestashop-mcp", ver)
		return
	}

	cwd, _ := os.Getwd()
	cfg, err := conf.Load(fs, cwd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Configuration error:", err)
		os.Exit(1)
	}

	log, logFile, err := logs.New(logs.Options{File: cfg.LogFile, Level: cfg.LogLevel, Console: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(log, cfg); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func run(log zerolog.Logger, cfg *conf.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()
	client, err := prestashop.NewClient(prestashop.Config{
		ShopURL:   cfg.ShopURL,
		APIKey:    cfg.APIKey,
		Languages: prestashop.Languages(cfg.LanguageIDs),
		Timeout:   cfg.Timeout,
	},
		prestashop.WithLogger(log.With().Str("component", "prestashop").Logger()),
		prestashop.WithObserver(m),
	)
	if err != nil {
		return err
	}
	defer client.Close()

	reg := integrations.NewRegistry(log)
	if err := prestashop.Register(reg, client); err != nil {
		return err
	}
	reg.Observe(m)

	var calls metrics.CallLister
	if cfg.JournalDSN != "" {
		dbh, err := db.Open(cfg.JournalDriver, cfg.JournalDSN)
		if err != nil {
			return err
		}
		defer dbh.Close()
		if err := dbh.Migrate(); err != nil {
			return err
		}
		journal := db.NewJournal(dbh, log)
		reg.Observe(journal)
		calls = journal
		log.Info().Str("driver", dbh.Driver).Msg("call journal ready")
	}

	s := syncer.New(log, reg, syncer.Options{
		Name:       "prestashop-mcp",
		Version:    ver,
		CheckTool:  "test_connection",
		OpsAddr:    cfg.MetricsAddr,
		OpsHandler: metrics.Router(m, calls),
	})
	log.Info().Str("version", ver).Str("shop", cfg.ShopURL).Msg("starting PrestaShop MCP server")
	if err := s.Start(ctx); err != nil {
		return err
	}
	defer s.Stop()

	select {
	case <-ctx.Done():
	case <-s.Done():
	}
	return nil
}
