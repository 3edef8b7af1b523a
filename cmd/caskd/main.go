// caskd is the CaskDB server daemon. It resolves its configuration from
// the command line and an optional config file, validates it, detaches
// into the background unless told otherwise, and supervises the network
// server until a stop signal arrives.
package main

import (
	"fmt"
	"os"

	"github.com/caskdb/caskdb/internal/daemon"
	"github.com/caskdb/caskdb/internal/logger"
	"github.com/caskdb/caskdb/internal/signals"
	"github.com/caskdb/caskdb/internal/supervisor"
	"github.com/caskdb/caskdb/pkg/config"
	"github.com/caskdb/caskdb/pkg/server"
	"github.com/caskdb/caskdb/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, action, err := config.Resolve(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "caskd: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'caskd --help' for usage.")
		return 1
	}

	switch action {
	case config.ActionHelp:
		fmt.Println(version.Banner())
		fmt.Println()
		opts.Registry().PrintUsage(os.Stdout)
		return 0
	case config.ActionGenerateDoc:
		if err := opts.Registry().GenerateDoc(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "caskd: %v\n", err)
			return 1
		}
		return 0
	}

	storeOpts, err := config.Validate(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "caskd: %v\n", err)
		return 1
	}

	if err := logger.Init(logger.Config{
		Level:  opts.Database.LogLevel,
		Format: "text",
		Output: opts.Database.LogTarget,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "caskd: %v\n", err)
		return 1
	}

	if !opts.General.Foreground {
		pid, err := daemon.Detach(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "caskd: failed to daemonize: %v\n", err)
			return 1
		}
		fmt.Printf("caskd started in the background with pid %d\n", pid)
		return 0
	}
	if daemon.IsDaemonChild() {
		daemon.FinishDetach()
	}

	daemon.RaiseFileLimit()

	var stop signals.StopFlag
	signals.NotifyTermination(&stop)
	signals.NotifyCrash()

	logger.Info("Starting caskd",
		"version", version.Server(),
		"engine", version.Engine(),
		"data_format", version.DataFormat(),
		"pid", os.Getpid())

	srv := server.New(server.Options{
		Port:           opts.Server.Port,
		ListenBacklog:  opts.Server.ListenBacklog,
		NumThreads:     opts.Server.NumThreads,
		RecvBufferSize: int(opts.Server.RecvBufferSize.Uint64()),
		SendBufferSize: int(opts.Server.SendBufferSize.Uint64()),
		MetricsPort:    opts.Server.MetricsPort,
		Store:          *storeOpts,
	})

	if err := supervisor.Run(srv, &stop, supervisor.PollInterval); err != nil {
		logger.Error("Server failed", "error", err)
		return 1
	}

	logger.Info("caskd stopped")
	return 0
}
