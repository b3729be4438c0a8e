package domain

import "errors"

var (
	ErrEmptySessionExport        = errors.New("cannot export a session with no items")
	ErrEquipmentNotFound         = errors.New("equipment not found")
	ErrInvalidQuantityAdjustment = errors.New("quantity can only be adjusted on an existing non-serialized item")
	ErrRemoteSessionNotFound     = errors.New("remote session not found or expired")
	ErrSessionNotFound           = errors.New("session not found")
	ErrStorageWriteFailed        = errors.New("storage write failed")
	ErrSyncNetwork               = errors.New("sync request failed")
	ErrSyncValidation            = errors.New("remote rejected session payload")
)
