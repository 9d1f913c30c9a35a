// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package hevy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// MaxTemplatePageSize is the largest page_size Hevy accepts for templates.
const MaxTemplatePageSize = 100

// ExerciseTemplate is the part of a Hevy exercise template the cache needs.
type ExerciseTemplate struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ExerciseTemplatesPage fetches one page of the exercise template catalog.
//
// A 404 means the page is past the end and returns ErrNoMorePages. A page
// without an exercise_templates array returns an empty slice. A template
// lacking an id or title is an error so that a refresh never builds a
// mapping from a response it does not understand.
func (c *Client) ExerciseTemplatesPage(ctx context.Context, page, pageSize int) ([]ExerciseTemplate, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	data, err := c.do(ctx, "list_exercise_templates", http.MethodGet, "/exercise_templates", params, nil)
	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.Status == http.StatusNotFound {
			return nil, ErrNoMorePages
		}
		return nil, err
	}
	return parseTemplatePage(data, page)
}

func parseTemplatePage(data []byte, page int) ([]ExerciseTemplate, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("exercise templates page %d: invalid JSON", page)
	}

	list := gjson.GetBytes(data, "exercise_templates")
	if !list.Exists() || list.Type == gjson.Null {
		return []ExerciseTemplate{}, nil
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("exercise templates page %d: exercise_templates is not an array", page)
	}

	items := list.Array()
	templates := make([]ExerciseTemplate, 0, len(items))
	for i, item := range items {
		id := item.Get("id")
		title := item.Get("title")
		if id.Type != gjson.String || title.Type != gjson.String {
			return nil, fmt.Errorf("exercise templates page %d: template %d has no string id and title", page, i)
		}
		templates = append(templates, ExerciseTemplate{ID: id.String(), Title: title.String()})
	}
	return templates, nil
}
