// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstake/genesis"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/lvldb"
	nsruntime "github.com/vechain/nftstake/runtime"
	"github.com/vechain/nftstake/xenv"
)

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	verbosity := ctx.Uint64(verbosityFlag.Name)
	if verbosity > 5 {
		return nil, fmt.Errorf("invalid verbosity %d, expected 0-5", verbosity)
	}

	var level slog.LevelVar
	level.Set(ethlog.FromLegacyLevel(int(verbosity)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = ethlog.JSONHandlerWithLevel(os.Stderr, &level)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		handler = ethlog.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(ethlog.NewLogger(handler))
	return &level, nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, string, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.Devnet(), "devnet", nil
	}
	gene, err := genesis.Load(path)
	if err != nil {
		return nil, "", err
	}
	return gene, path, nil
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func openMainDB(ctx *cli.Context, dataDir string) (*lvldb.LevelDB, error) {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	fdCache, err := suggestFDCache()
	if err != nil {
		return nil, err
	}
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB / 2,
		OpenFilesCacheCapacity: fdCache,
		SyncCommits:            ctx.Bool(syncCommitsFlag.Name),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, nil
}

func openMemMainDB() (*lvldb.LevelDB, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, errors.Wrap(err, "open main database")
	}
	return db, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}
	return sizeMB
}

func suggestFDCache() (int, error) {
	limit, err := fdlimit.Current()
	if err != nil {
		return 0, errors.Wrap(err, "get fd limit")
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120, nil
	}
	return n, nil
}

// stateCacheSize converts the cache flag into a number of cached storage entries.
func stateCacheSize(ctx *cli.Context) int {
	return normalizeCacheSize(ctx.Int(cacheFlag.Name)) * 256
}

// initRuntime opens the runtime and applies the genesis on a fresh database.
func initRuntime(db *lvldb.LevelDB, cacheSize int, gene *genesis.Genesis) (*nsruntime.Runtime, error) {
	rt, err := nsruntime.New(db, cacheSize)
	if err != nil {
		return nil, err
	}
	initialized, err := rt.Initialized()
	if err != nil {
		return nil, err
	}
	if initialized {
		logger.Info("existing state loaded", "head", rt.Head().Number)
		return rt, nil
	}
	if err := rt.Init(gene.Apply); err != nil {
		return nil, errors.Wrap(err, "apply genesis")
	}
	return rt, nil
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func(), error) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var g errgroup.Group
	g.Go(func() error {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		if err := g.Wait(); err != nil {
			logger.Warn("API server stopped", "err", err)
		}
	}, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(
	network string,
	head xenv.BlockContext,
	dataDir string,
	apiURL string,
	adminURL string,
	metricsURL string,
) {
	fmt.Printf(`Starting %v
    Network      [ %v ]
    Head block   [ #%v @%v ]
    Data dir     [ %v ]
    API portal   [ %v ]
    Admin        [ %v ]
    Metrics      [ %v ]
`,
		common.MakeName("NFTStake", fullVersion()),
		network,
		head.Number, time.Unix(int64(head.Time), 0),
		dataDir,
		apiURL,
		orDisabled(adminURL),
		orDisabled(metricsURL))
}

func orDisabled(url string) string {
	if url == "" {
		return "disabled"
	}
	return url
}

// copy from go-ethereum
func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.nftstake")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.nftstake")
		default:
			return filepath.Join(home, ".org.vechain.nftstake")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
