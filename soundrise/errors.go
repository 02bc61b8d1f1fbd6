// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package soundrise

import (
	"errors"

	"github.com/GetomG/soundrise-project/bank"
	"github.com/GetomG/soundrise-project/token"
)

// Kind classifies a failed operation.
type Kind uint8

const (
	KindUnknown Kind = iota
	PreconditionViolation
	ValidationError
	InsufficientValue
	AuthorizationError
	NotFound
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case PreconditionViolation:
		return "precondition_violation"
	case ValidationError:
		return "validation_error"
	case InsufficientValue:
		return "insufficient_value"
	case AuthorizationError:
		return "authorization_error"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a named marketplace failure.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: "soundrise: " + msg}
}

// Errors returned by marketplace operations.
var (
	ErrAlreadyRegistered       = newError(PreconditionViolation, "already registered")
	ErrNotRegisteredArtist     = newError(PreconditionViolation, "not a registered artist")
	ErrExclusiveNotPurchasable = newError(PreconditionViolation, "exclusive content cannot be purchased with native currency")
	ErrAlreadyPurchased        = newError(PreconditionViolation, "song already purchased")
	ErrNotEntitled             = newError(PreconditionViolation, "song not purchased or unlocked")
	ErrNotExclusive            = newError(PreconditionViolation, "song is not exclusive")
	ErrAlreadyUnlocked         = newError(PreconditionViolation, "exclusive content already unlocked")
	ErrNotPurchased            = newError(PreconditionViolation, "song must be purchased before rating")
	ErrAlreadyRated            = newError(PreconditionViolation, "song already rated")
	ErrNothingRetained         = newError(PreconditionViolation, "no retained funds to withdraw")
	ErrReentrantCall           = newError(PreconditionViolation, "reentrant call")

	ErrInvalidName       = newError(ValidationError, "artist name must not be empty")
	ErrInvalidPrice      = newError(ValidationError, "price must be greater than zero")
	ErrInvalidRoyalty    = newError(ValidationError, "royalty must be between 0 and 100")
	ErrInvalidUnlockCost = newError(ValidationError, "unlock cost cannot be negative")
	ErrInvalidRating     = newError(ValidationError, "rating must be between 1 and 5")
	ErrInvalidValue      = newError(ValidationError, "attached value cannot be negative")

	ErrInsufficientPayment      = newError(InsufficientValue, "insufficient payment")
	ErrInsufficientTokenBalance = newError(InsufficientValue, "insufficient SRT balance")

	ErrRewardMintFailed = newError(AuthorizationError, "reward mint failed")
	ErrNotOwner         = newError(AuthorizationError, "caller is not the marketplace owner")

	ErrUnknownSong = newError(NotFound, "unknown song")
)

// KindOf classifies err, looking through wrapping. Ledger errors are mapped
// onto the same kinds as marketplace errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, token.ErrUnauthorizedAccount):
		return AuthorizationError
	case errors.Is(err, token.ErrInsufficientBalance),
		errors.Is(err, token.ErrInsufficientAllowance),
		errors.Is(err, bank.ErrInsufficientFunds):
		return InsufficientValue
	case errors.Is(err, token.ErrInvalidReceiver),
		errors.Is(err, token.ErrInvalidOwner),
		errors.Is(err, token.ErrInvalidAmount),
		errors.Is(err, bank.ErrNegativeAmount):
		return ValidationError
	case errors.Is(err, bank.ErrReceiveRejected):
		return PreconditionViolation
	}
	return KindUnknown
}
