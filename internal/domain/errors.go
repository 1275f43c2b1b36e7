package domain

import "errors"

var ErrShopNotFound = errors.New("shop slot not found")
