// Reruns - Episode Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reruns

/*
Package supervisor runs the long-lived parts of the Reruns server under a
suture v4 supervisor tree.

	RootSupervisor ("reruns")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService (if LOOKUP_CACHE_SWEEP > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Failures restart within their own layer with exponential backoff once
FailureThreshold is exceeded. Supervisor events are logged through
sutureslog, so the tree takes a *slog.Logger (see logging.NewSlogLogger).

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, 10*time.Second, log.Logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
