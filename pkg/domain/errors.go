package domain

import "errors"

// Authentication errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
)

// Entity errors
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrClientExists        = errors.New("client already exists")
	ErrMembershipNotFound  = errors.New("membership not found")
	ErrMembershipExpired   = errors.New("membership expired")
	ErrMembershipNotFrozen = errors.New("membership is not frozen")
	ErrAlreadySubscribed   = errors.New("already subscribed")
	ErrBankCardNotFound    = errors.New("bank card not found")
	ErrGymNotFound         = errors.New("gym not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrAppointmentNotFound = errors.New("trainer appointment not found")
	ErrAlreadyInGym        = errors.New("already in the gym")
	ErrNotInGym            = errors.New("no open gym visit")
)

// Input errors
var (
	ErrInvalidRange = errors.New("invalid date range")
	ErrInvalidLevel = errors.New("unknown membership level")
)
