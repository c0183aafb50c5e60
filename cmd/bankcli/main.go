// Package main runs the interactive account ledger console.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/albko/bankledger/internal/console"
	"github.com/albko/bankledger/internal/ledgerrepo"
	"github.com/albko/bankledger/internal/ledgerservice"
	"github.com/albko/bankledger/pkg/configpkg"
	"github.com/albko/bankledger/pkg/logpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := logpkg.New(config)

	repo, err := ledgerrepo.Open(config.LedgerFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open ledger file")
	}

	service := ledgerservice.New(repo)

	ctx := logger.WithContext(context.Background())

	logger.Info().Str("ledger", config.LedgerFile).Msg("ledger console started")

	c := console.New(service, os.Stdin, os.Stdout)
	if err := c.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("cannot read console input")
	}
}
