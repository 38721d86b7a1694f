// Package conv provides bounds-checked integer conversions.
//
// The engine addresses records by uint32 slot and stores coordinates as
// int32; these helpers guard the places where a wider Go int crosses into
// one of those fixed-width types.
package conv
