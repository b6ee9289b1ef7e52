// Package draw provides the core types for TOTO draw results.
//
// A Record holds one draw: its number, date, the six winning numbers plus the
// additional number, per-group winner/prize figures, and the derived
// prize-pool estimates. A Locator is a transient reference to a fetchable
// draw discovered on the archive page; locators are consumed during
// reconciliation and never persisted.
package draw
