// Copyright 2024 The corevm Authors
// This file is part of corevm.
//
// corevm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// corevm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with corevm. If not, see <http://www.gnu.org/licenses/>.

// Command corevmd wires the Contract State Range Engine and the P2P
// Network Orchestrator together into a single demo process: it opens a
// state store, starts an orchestrator against an in-memory p2p service
// stand-in, and runs until interrupted.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"

	"github.com/chainvm/corevm/common"
	"github.com/chainvm/corevm/gossip"
	"github.com/chainvm/corevm/orchestrator"
	"github.com/chainvm/corevm/storage"
	"github.com/chainvm/corevm/vmstate"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (optional)")
	dataDir := flag.String("datadir", "", "state store directory (empty = in-memory)")
	flag.Parse()

	cfg := orchestrator.P2PConfig{MaxBlockSize: 2 << 20, MaxPeers: 32}
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			log.Crit("failed to load config", "path", *configPath, "err", err)
		}
		cfg = loaded
	}

	store, err := openStore(*dataDir)
	if err != nil {
		log.Crit("failed to open state store", "err", err)
	}
	defer store.Close()

	db := vmstate.New(vmstate.ExecutionContext{
		Height:    0,
		Timestamp: common.Tai64FromUnix(0),
		Coinbase:  common.Address{},
	}, store)
	_ = db // exercised by the VM, not by this demo process directly

	p2p := orchestrator.NewMemP2PService(cfg)
	p2pDb := orchestrator.NewMemP2pDb()

	reqCh := make(chan gossip.RequestEvent, 16)
	txConsensus := make(chan *gossip.Envelope[gossip.ConsensusVote], 16)
	txBlock := make(chan *gossip.Envelope[gossip.Block], 16)
	var txTransaction event.Feed

	pno := orchestrator.New(cfg, p2p, p2pDb, reqCh, txConsensus, txBlock, &txTransaction)
	handle := orchestrator.NewServiceHandle(pno, reqCh)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := handle.Start(ctx); err != nil {
		log.Crit("failed to start orchestrator", "err", err)
	}
	log.Info("corevmd started", "maxBlockSize", cfg.MaxBlockSize, "maxPeers", cfg.MaxPeers)

	<-ctx.Done()
	log.Info("shutting down")
	if done := handle.Stop(); done != nil {
		if err := <-done; err != nil {
			log.Error("orchestrator shutdown error", "err", err)
		}
	}
}

func openStore(dataDir string) (*storage.LevelDBStore, error) {
	if dataDir == "" {
		return storage.OpenInMemory()
	}
	return storage.Open(dataDir)
}
