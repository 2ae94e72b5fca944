// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package state

// SearchPatch is a partial update to a SearchDraft. Nil fields are
// left untouched; set fields replace the current value. The patch is
// an explicit allow-list: a field absent from the struct cannot be
// modified through draft updates.
type SearchPatch struct {
	Location      *string
	CheckIn       *string
	CheckOut      *string
	Guests        *int
	MinPrice      *int
	MaxPrice      *int
	PropertyTypes *[]string
	Amenities     *[]string
	SortBy        *string
}

// Apply merges the patch into draft. Guest counts below one are
// clamped to one, matching the draft's floor; everything else is
// stored as given (validation is a presentation concern).
func (p SearchPatch) Apply(draft *SearchDraft) {
	if p.Location != nil {
		draft.Location = *p.Location
	}
	if p.CheckIn != nil {
		draft.CheckIn = *p.CheckIn
	}
	if p.CheckOut != nil {
		draft.CheckOut = *p.CheckOut
	}
	if p.Guests != nil {
		draft.Guests = *p.Guests
		if draft.Guests < 1 {
			draft.Guests = 1
		}
	}
	if p.MinPrice != nil {
		draft.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		draft.MaxPrice = *p.MaxPrice
	}
	if p.PropertyTypes != nil {
		draft.PropertyTypes = append([]string(nil), (*p.PropertyTypes)...)
	}
	if p.Amenities != nil {
		draft.Amenities = append([]string(nil), (*p.Amenities)...)
	}
	if p.SortBy != nil {
		draft.SortBy = *p.SortBy
	}
}

// BookingPatch is a partial update to a BookingDraft.
type BookingPatch struct {
	ListingID       *string
	CheckIn         *string
	CheckOut        *string
	Guests          *int
	SpecialRequests *string
}

// Apply merges the patch into draft.
func (p BookingPatch) Apply(draft *BookingDraft) {
	if p.ListingID != nil {
		draft.ListingID = *p.ListingID
	}
	if p.CheckIn != nil {
		draft.CheckIn = *p.CheckIn
	}
	if p.CheckOut != nil {
		draft.CheckOut = *p.CheckOut
	}
	if p.Guests != nil {
		draft.Guests = *p.Guests
		if draft.Guests < 1 {
			draft.Guests = 1
		}
	}
	if p.SpecialRequests != nil {
		draft.SpecialRequests = *p.SpecialRequests
	}
}
