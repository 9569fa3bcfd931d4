// Package models holds the canonical client-side entities and the
// normalizers that build them from backend payloads.
//
// The backend has shipped several shapes for the same resource (bare
// arrays, arrays wrapped under "data", "items" or a resource key, camelCase
// and snake_case field names). List normalizers accept all of them and never
// fail: unusable items are dropped and an unusable payload gives an empty
// list. Single-entity normalizers report whether the payload held a valid
// entity.
package models
