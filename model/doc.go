// Package model defines the value types exchanged with the widget store.
//
// # Widgets
//
//   - Widget: immutable snapshot of a stored widget
//   - CreateRequest: input for creating a widget (Z optional)
//   - UpdateRequest: partial update, only non-nil fields are applied
//
// # Queries
//
// Collection reads take a Query, a closed set of variants:
//
//   - Page: z-ordered window with Skip/Take
//   - Box: bounding-box containment filter
//
// A nil Query selects DefaultPage.
package model
