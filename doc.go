// Package widgetstore provides an in-memory store for rectangular widgets on an
// unbounded integer plane.
//
// Every widget has a unique z-index that fixes its stacking order. Creating or
// moving a widget onto an occupied z shifts the contiguous run of widgets
// starting at that z up by one, so z values stay unique without renumbering
// the whole store.
//
// Collections can be read either as a page over the z order or as the set of
// widgets fully contained in an axis-aligned bounding box:
//
//	ctx := context.Background()
//	store := widgetstore.New(widgetstore.WithLogLevel(slog.LevelDebug))
//
//	w, err := store.Create(ctx, model.CreateRequest{X: 10, Y: 10, Width: 4, Height: 4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, _ := store.List(ctx, model.Page{Skip: 0, Take: 20})
//	inside, _ := store.List(ctx, model.Box{Left: 0, Right: 20, Upper: 20, Lower: 0})
//
// All operations are safe for concurrent use. Reads share a lock; writes
// serialize. Failures are reported as ErrInvalidArgument or ErrNotFound and can
// be matched with errors.Is.
//
// The HTTP adapter lives in package server and the daemon in cmd/widgetd.
package widgetstore
