// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstake/api"
	"github.com/vechain/nftstake/cmd/nftstake/httpserver"
	"github.com/vechain/nftstake/genesis"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "NFTStake",
		Usage:     "Node of the conditional NFT staking engine",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			persistFlag,
			syncCommitsFlag,
			genesisFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			enableAPILogsFlag,
			blockIntervalFlag,
			verbosityFlag,
			jsonLogsFlag,
			pprofFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "check-genesis",
				Usage:  "validate a genesis file without starting the node",
				Flags:  []cli.Flag{genesisFlag},
				Action: checkGenesisAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { logger.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	gene, network, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	var (
		db      *lvldb.LevelDB
		dataDir = "memory"
	)
	if ctx.Bool(persistFlag.Name) {
		if dataDir, err = makeDataDir(ctx); err != nil {
			return err
		}
		if db, err = openMainDB(ctx, dataDir); err != nil {
			return err
		}
	} else if db, err = openMemMainDB(); err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); db.Close() }()

	rt, err := initRuntime(db, stateCacheSize(ctx), gene)
	if err != nil {
		return err
	}
	defer rt.Close()

	blockInterval := ctx.Duration(blockIntervalFlag.Name)

	var metricsURL string
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		metricsURL = url
	}

	var adminURL string
	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := api.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, rt, blockInterval)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
		adminURL = url
	}

	enableReqLogger := &atomic.Bool{}
	enableReqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))

	apiHandler, apiCloser := api.New(rt, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		BlockInterval:        blockInterval,
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:      enableReqLogger,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
	})
	defer func() { logger.Info("closing API..."); apiCloser() }()

	apiURL, srvCloser, err := startAPIServer(ctx, apiHandler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(network, rt.Head(), dataDir, apiURL, adminURL, metricsURL)

	return produceBlocks(exitSignal, rt, blockInterval)
}

func checkGenesisAction(ctx *cli.Context) error {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return fmt.Errorf("missing -%s", genesisFlag.Name)
	}
	gene, err := genesis.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("genesis ok: admin %v, %d balances, %d collections\n", gene.Admin, len(gene.Balances), len(gene.Collections))
	return nil
}
