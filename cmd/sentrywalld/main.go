// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Command sentrywalld is the inline packet-filter daemon: it attaches an
// AF_PACKET socket to every configured interface and runs each captured
// frame through the pipeline. The capture socket is passive: the verdict
// is not acted on, so no frame is dropped or re-injected by this process.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mdlayher/packet"
	"golang.org/x/net/bpf"

	"sentrywall.dev/sentrywall/internal/admin"
	"sentrywall.dev/sentrywall/internal/config"
	"sentrywall.dev/sentrywall/internal/host"
	"sentrywall.dev/sentrywall/internal/logging"
	"sentrywall.dev/sentrywall/internal/pipeline"
	"sentrywall.dev/sentrywall/internal/ratelimit"
	"sentrywall.dev/sentrywall/internal/tables"
)

func main() {
	configPath := flag.String("config", "/etc/sentrywall/sentrywall.hcl", "path to the HCL configuration file")
	flag.Parse()

	log := logging.Default()
	instance := uuid.New()
	log = log.With("instance", instance.String())
	logging.SetDefault(log)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if warns := host.VerifyBPFSupport(); len(warns) > 0 {
		for _, w := range warns {
			log.Warn("system requirement check", "feature", w.Feature, "message", w.Message, "fatal", w.Fatal)
		}
	}

	set, backend, err := tables.Open(cfg.Sizes())
	if err != nil {
		log.Error("failed to open tables", "error", err)
		os.Exit(1)
	}
	log.Info("tables opened", "backend", string(backend))

	p := pipeline.New(set)

	limiter := ratelimit.NewLimiter(set)
	if err := limiter.SetConfig(cfg.RateLimitConfig()); err != nil {
		log.Error("failed to store rate-limit config", "error", err)
	}

	reloader := config.NewReloader(*configPath, cfg, func(next *config.Config) {
		// table sizes are fixed at process start; only the rate-limit
		// config can change without restarting the tables.
		if err := limiter.SetConfig(next.RateLimitConfig()); err != nil {
			log.Error("failed to store rate-limit config", "error", err)
		}
	})
	stop := make(chan struct{})
	defer close(stop)
	reloader.WatchSIGHUP(stop)

	adminSrv := admin.New(cfg.AdminListenAddr(), set, backend, p, instance)
	adminSrv.Start()
	log.Info("admin listener started", "addr", cfg.AdminListenAddr())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, name := range cfg.InterfaceNames() {
		if err := attachAndServe(ctx, name, p, log); err != nil {
			log.Error("failed to attach interface", "interface", name, "error", err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	adminSrv.Shutdown(shutdownCtx)
}

// etherTypeFilter is the classic-BPF program attached to every capture
// socket: it rejects anything but EtherType IPv4/IPv6 at the kernel
// level, pushing spec.md §1's "before any socket lookup" framing one
// layer below userspace.
var etherTypeFilter = []bpf.Instruction{
	bpf.LoadAbsolute{Off: 12, Size: 2},
	bpf.JumpIf{Cond: bpf.JumpEqual, Val: 0x0800, SkipTrue: 2},
	bpf.JumpIf{Cond: bpf.JumpEqual, Val: 0x86DD, SkipTrue: 1},
	bpf.RetConstant{Val: 0},
	bpf.RetConstant{Val: 262144},
}

func attachAndServe(ctx context.Context, name string, p *pipeline.Pipeline, log *logging.Logger) error {
	if _, err := host.AttachInterface(name); err != nil {
		return err
	}
	if warnings, err := host.CheckOffloadFeatures(name); err == nil {
		for _, w := range warnings {
			log.Warn("offload feature may coalesce frames", "interface", w.Interface, "feature", w.Feature)
		}
	}

	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return err
	}

	conn, err := packet.Listen(ifi, packet.Raw, int(htons(0x0003)), nil)
	if err != nil {
		return err
	}

	assembled, err := bpf.Assemble(etherTypeFilter)
	if err != nil {
		conn.Close()
		return err
	}
	if err := conn.SetBPF(assembled); err != nil {
		conn.Close()
		return err
	}

	go serve(ctx, conn, p, log, name)
	return nil
}

func serve(ctx context.Context, conn *packet.Conn, p *pipeline.Pipeline, log *logging.Logger, iface string) {
	defer conn.Close()

	buf := make([]byte, 65536)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			log.Error("read failed", "interface", iface, "error", err)
			return
		}

		// The verdict is discarded; what remains of Run are the table and
		// counter (internal/stats) updates its stages make. Nothing is
		// logged per-packet (spec.md §7).
		p.Run(buf[:n], uint64(time.Now().UnixNano()))
	}
}

func htons(v uint16) uint16 {
	return (v << 8) | (v >> 8)
}
