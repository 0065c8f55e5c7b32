package domain

import "errors"

// Domain errors
var (
	ErrStateNotFound     = errors.New("state not found")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrProductIDRequired = errors.New("product id is required")
	ErrOfferIDRequired   = errors.New("offer id is required")
	ErrOfferTypeInvalid  = errors.New("offer type must be course or consultation")
	ErrNameRequired      = errors.New("name is required")
	ErrEmailRequired     = errors.New("email address is required")
)
