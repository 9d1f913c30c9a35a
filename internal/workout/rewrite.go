// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

// Package workout rewrites client workout submissions into the shape the
// Hevy POST /workouts endpoint accepts.
//
// Clients may name exercises by title instead of exercise_template_id and may
// send bookkeeping fields (index, title, supersets_id, per-set index) that
// Hevy rejects. Rewrite resolves titles through a Lookuper and strips those
// fields. It performs no I/O.
package workout

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Fields removed from every exercise and from every set.
var (
	forbiddenExerciseFields = []string{"index", "title", "supersets_id"}
	forbiddenSetFields      = []string{"index"}
)

const templateIDField = "exercise_template_id"

// Lookuper resolves an exercise title to a template id, ignoring case.
// *templates.Cache implements it.
type Lookuper interface {
	Lookup(title string) (string, bool)
}

// MalformedError reports a payload that does not have the expected structure.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "Malformed workout JSON: " + e.Reason
}

// ValidationError reports an exercise whose title has no cached template.
type ValidationError struct {
	Title string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("No template ID for '%s'", e.Title)
}

func malformed(format string, args ...interface{}) error {
	return &MalformedError{Reason: fmt.Sprintf(format, args...)}
}

// Decode parses a submission into the generic form Rewrite works on.
// Numbers are kept as json.Number so they re-encode exactly as sent.
func Decode(raw []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, &MalformedError{Reason: err.Error()}
	}
	if payload == nil {
		return nil, malformed("body is not a JSON object")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, malformed("unexpected data after the JSON object")
	}
	return payload, nil
}

// Rewrite mutates payload in place.
//
// For each entry of workout.exercises, in order:
//  1. A missing, null or empty exercise_template_id is filled from the
//     exercise title. An unknown title fails the whole call with
//     *ValidationError.
//  2. index, title and supersets_id are removed.
//  3. index is removed from every entry of sets.
//
// Structural problems fail with *MalformedError. Because the first error
// stops the walk, callers must discard the payload on error.
func Rewrite(payload map[string]interface{}, lookup Lookuper) error {
	exercises, err := exerciseList(payload)
	if err != nil {
		return err
	}

	for i, raw := range exercises {
		exercise, ok := raw.(map[string]interface{})
		if !ok {
			return malformed("exercise %d is not an object", i)
		}
		if err := resolveTemplateID(exercise, i, lookup); err != nil {
			return err
		}
		deleteFields(exercise, forbiddenExerciseFields)
		if err := cleanSets(exercise, i); err != nil {
			return err
		}
	}
	return nil
}

func exerciseList(payload map[string]interface{}) ([]interface{}, error) {
	rawWorkout, ok := payload["workout"]
	if !ok {
		return nil, malformed("missing 'workout'")
	}
	workout, ok := rawWorkout.(map[string]interface{})
	if !ok {
		return nil, malformed("'workout' is not an object")
	}
	rawExercises, ok := workout["exercises"]
	if !ok {
		return nil, malformed("missing 'workout.exercises'")
	}
	exercises, ok := rawExercises.([]interface{})
	if !ok {
		return nil, malformed("'workout.exercises' is not an array")
	}
	return exercises, nil
}

func resolveTemplateID(exercise map[string]interface{}, i int, lookup Lookuper) error {
	if hasTemplateID(exercise) {
		return nil
	}

	rawTitle, ok := exercise["title"]
	if !ok {
		return malformed("exercise %d has no '%s' and no 'title'", i, templateIDField)
	}
	title, ok := rawTitle.(string)
	if !ok {
		return malformed("exercise %d 'title' is not a string", i)
	}

	id, found := lookup.Lookup(title)
	if !found || id == "" {
		return &ValidationError{Title: title}
	}
	exercise[templateIDField] = id
	return nil
}

// hasTemplateID treats null, "", 0, false, [] and {} as absent.
func hasTemplateID(exercise map[string]interface{}) bool {
	switch v := exercise[templateIDField].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	default:
		return true
	}
}

func cleanSets(exercise map[string]interface{}, i int) error {
	rawSets, ok := exercise["sets"]
	if !ok {
		return nil
	}
	sets, ok := rawSets.([]interface{})
	if !ok {
		return malformed("exercise %d 'sets' is not an array", i)
	}
	for j, rawSet := range sets {
		set, ok := rawSet.(map[string]interface{})
		if !ok {
			return malformed("exercise %d set %d is not an object", i, j)
		}
		deleteFields(set, forbiddenSetFields)
	}
	return nil
}

func deleteFields(m map[string]interface{}, fields []string) {
	for _, f := range fields {
		delete(m, f)
	}
}
