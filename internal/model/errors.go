package model

import "errors"

var (
	ErrInvalidUsername = errors.New("username is required and must be a string")
	ErrEmptyUsername   = errors.New("username cannot be empty")
	ErrMissingUsername = errors.New("username is required")
	ErrBadHandleFormat = errors.New("invalid username format")

	ErrTooManyUsernames = errors.New("too many usernames in batch")
	ErrNoUsernames      = errors.New("usernames must be a non-empty array")

	ErrProfileNotFound  = errors.New("profile not found")
	ErrNoProfileData    = errors.New("could not extract profile data")
	ErrSourcesExhausted = errors.New("all profile sources failed")

	ErrDatabase = errors.New("database error")
)
