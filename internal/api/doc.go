// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

/*
Package api provides the HTTP surface of hevygate.

Most endpoints are thin pass-throughs to the Hevy API: the upstream JSON is
relayed byte for byte and upstream errors keep their status code. Two things
are added on top:

  - Page sizes on list endpoints are clamped to [1, 10].
  - POST /workouts bodies are rewritten by package workout before they are
    forwarded, so clients may name exercises by title.

Routes:

	GET  /exercise_templates/all      live title -> template id mapping
	POST /exercise_templates/refresh  rebuild the mapping now
	GET  /workouts                    page, pageSize (default 10), since
	POST /workouts                    rewrite, forward, 201
	GET  /routines                    page, pageSize (default 5)
	POST /routines                    forward, 201
	GET  /routines/{id}
	PUT  /routines/{id}
	GET  /health, /health/live, /health/ready
	GET  /metrics

Error bodies always have the form {"detail": "..."}:

	upstream non-2xx     same status, upstream body as detail
	transport failure    502
	circuit open         503
	malformed workout    400 "Malformed workout JSON: ..."
	unknown title        422 "No template ID for '<title>'"
*/
package api
