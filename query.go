package widgetstore

import (
	"github.com/hupe1980/widgetstore/internal/engine"
	"github.com/hupe1980/widgetstore/model"
)

// ParseQuery builds a collection query from optional transport parameters.
//
// Paging (skip, take) and bounding box (left, right, upper, lower) parameters
// are mutually exclusive. A bounding box needs all four bounds. Missing
// paging parameters default to skip=0 and take=model.DefaultTake.
func ParseQuery(skip, take, left, right, upper, lower *int32) (model.Query, error) {
	paging := skip != nil || take != nil
	bounds := []struct {
		name string
		v    *int32
	}{
		{"leftBound", left},
		{"rightBound", right},
		{"upperBound", upper},
		{"lowerBound", lower},
	}

	given := 0
	for _, b := range bounds {
		if b.v != nil {
			given++
		}
	}

	switch {
	case paging && given > 0:
		return nil, invalidArgument("query", "cannot combine paging with a bounding box")
	case given > 0:
		for _, b := range bounds {
			if b.v == nil {
				return nil, invalidArgument(b.name, "is required when filtering by bounding box")
			}
		}
		box := model.Box{Left: *left, Right: *right, Upper: *upper, Lower: *lower}
		if err := engine.ValidateBox(box); err != nil {
			return nil, translateError(err)
		}
		return box, nil
	case paging:
		page := model.DefaultPage
		if skip != nil {
			page.Skip = int(*skip)
		}
		if take != nil {
			page.Take = int(*take)
		}
		if err := engine.ValidatePage(page); err != nil {
			return nil, translateError(err)
		}
		return page, nil
	default:
		return model.DefaultPage, nil
	}
}
