// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

/*
Package supervisor runs hevygate's long-lived services under suture v4.

	hevygate
	├── background-layer
	│   └── template-refresh
	└── api-layer
	    └── http-server

A service that returns an error is restarted with suture's backoff. The
layers are separate supervisors, so repeated failures of the scheduler
never put the HTTP server into backoff.

Supervisor events are logged through sutureslog using the zerolog-backed
slog logger from package logging.
*/
package supervisor
