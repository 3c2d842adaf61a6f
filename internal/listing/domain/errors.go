package domain

import "errors"

var (
	ErrListingNotFound        = errors.New("listing not found")
	ErrForbidden              = errors.New("requester does not own this listing")
	ErrDuplicateWishlistEntry = errors.New("listing already in wishlist")
	ErrInvalidListingData     = errors.New("invalid listing data")
	ErrPaymentFailed          = errors.New("payment confirmation was not accepted")
	ErrModerationUnavailable  = errors.New("moderation service unavailable")
)
