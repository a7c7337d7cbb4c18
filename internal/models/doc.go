// Package models defines the core domain models for Tipout.
//
// # Models
//
//   - Participant: one row of the tip-out form (name plus raw hours/percentage text)
//   - Method: the allocation policy used for a calculation
//   - AllocationResult: calculated share for one participant
//   - HistoryEntry: a past calculation kept in the bounded history
//
// Participants are identified by name strings only. There are no user accounts.
//
// # Design Principles
//
// 1. **Raw input stays raw**: Participant keeps the free-text hours and percentage
// values so the calculator decides eligibility, not the caller
// 2. **Stable persisted shape**: HistoryEntry JSON field names match the blobs
// written by earlier versions of the calculator, so old history still loads
// 3. **Immutable history**: entries are created once and never updated in place
package models
