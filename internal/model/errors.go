package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorCode is the stable, machine-readable kind of a rejected operation.
type ErrorCode string

const (
	CodeInvalidParams     ErrorCode = "INVALID_PARAMS"
	CodeInvalidBet        ErrorCode = "INVALID_BET"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeAlreadyUsed       ErrorCode = "ALREADY_USED"
	CodeDuplicateCode     ErrorCode = "DUPLICATE_CODE"
	CodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	CodeSessionClaimed    ErrorCode = "SESSION_CLAIMED"
	CodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	CodeDuplicateRequest  ErrorCode = "DUPLICATE_REQUEST"
	CodeRequestNotFound   ErrorCode = "REQUEST_NOT_FOUND"
	CodeAmountMismatch    ErrorCode = "AMOUNT_MISMATCH"
	CodePayoutPending     ErrorCode = "PAYOUT_PENDING"
	CodeIllegalTransition ErrorCode = "ILLEGAL_TRANSITION"
	CodeAlreadyPaid       ErrorCode = "ALREADY_PAID"
	CodeAccountNotFound   ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeDuplicateAccount  ErrorCode = "DUPLICATE_ACCOUNT"
	CodeInsufficientBal   ErrorCode = "INSUFFICIENT_BALANCE"
	CodeWagerNotMet       ErrorCode = "WAGER_NOT_MET"
	CodeTwoFactorRequired ErrorCode = "TWO_FACTOR_REQUIRED"
	CodeExpired           ErrorCode = "EXPIRED"
	CodeInvalidCode       ErrorCode = "INVALID_CODE"
	CodeUnauthorized      ErrorCode = "UNAUTHORIZED"
)

// ErrorClass groups error codes by how the caller should react.
type ErrorClass int

const (
	ClassValidation ErrorClass = iota
	ClassNotFound
	ClassConflict
	ClassInsufficient
	ClassIntegrity
	ClassUnauthorized
)

// Class reports which taxonomy bucket the code belongs to.
func (c ErrorCode) Class() ErrorClass {
	switch c {
	case CodeNotFound, CodeSessionNotFound, CodeRequestNotFound, CodeAccountNotFound:
		return ClassNotFound
	case CodeAlreadyUsed, CodeDuplicateCode, CodeSessionClaimed, CodeDuplicateRequest,
		CodePayoutPending, CodeIllegalTransition, CodeAlreadyPaid, CodeDuplicateAccount:
		return ClassConflict
	case CodeInsufficientFunds, CodeInsufficientBal, CodeWagerNotMet:
		return ClassInsufficient
	case CodeAmountMismatch:
		return ClassIntegrity
	case CodeUnauthorized, CodeTwoFactorRequired, CodeExpired, CodeInvalidCode:
		return ClassUnauthorized
	default:
		return ClassValidation
	}
}

// Error is a recoverable domain rejection. Two errors are equal under
// errors.Is when their codes match, so callers can compare against the
// sentinels below regardless of message.
type Error struct {
	Code      ErrorCode
	Message   string
	Shortfall *decimal.Decimal
}

func (e *Error) Error() string {
	if e.Shortfall != nil {
		return fmt.Sprintf("%s: %s (shortfall %s)", e.Code, e.Message, e.Shortfall.String())
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError builds a domain error with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithShortfall returns a copy of e carrying the missing amount.
func (e *Error) WithShortfall(amount decimal.Decimal) *Error {
	c := *e
	c.Shortfall = &amount
	return &c
}

// AsError extracts the domain error from err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

var (
	ErrInvalidParams     = &Error{Code: CodeInvalidParams, Message: "invalid parameters"}
	ErrInvalidBet        = &Error{Code: CodeInvalidBet, Message: "invalid bet amount"}
	ErrCodeNotFound      = &Error{Code: CodeNotFound, Message: "code not found"}
	ErrAlreadyUsed       = &Error{Code: CodeAlreadyUsed, Message: "code already used"}
	ErrDuplicateCode     = &Error{Code: CodeDuplicateCode, Message: "code already exists"}
	ErrSessionNotFound   = &Error{Code: CodeSessionNotFound, Message: "session not found"}
	ErrSessionClaimed    = &Error{Code: CodeSessionClaimed, Message: "session winnings already claimed"}
	ErrInsufficientFunds = &Error{Code: CodeInsufficientFunds, Message: "not enough credits"}
	ErrDuplicateRequest  = &Error{Code: CodeDuplicateRequest, Message: "a payout request already exists for this code"}
	ErrRequestNotFound   = &Error{Code: CodeRequestNotFound, Message: "payout request not found"}
	ErrAmountMismatch    = &Error{Code: CodeAmountMismatch, Message: "amount does not match session winnings"}
	ErrPayoutPending     = &Error{Code: CodePayoutPending, Message: "a payout is pending for this code"}
	ErrIllegalTransition = &Error{Code: CodeIllegalTransition, Message: "no legal transition"}
	ErrAlreadyPaid       = &Error{Code: CodeAlreadyPaid, Message: "code already paid"}
	ErrAccountNotFound   = &Error{Code: CodeAccountNotFound, Message: "account not found"}
	ErrDuplicateAccount  = &Error{Code: CodeDuplicateAccount, Message: "account already exists"}
	ErrInsufficientBal   = &Error{Code: CodeInsufficientBal, Message: "insufficient balance"}
	ErrWagerNotMet       = &Error{Code: CodeWagerNotMet, Message: "wager requirement not met"}
	ErrTwoFactorRequired = &Error{Code: CodeTwoFactorRequired, Message: "two-factor verification required"}
	ErrExpired           = &Error{Code: CodeExpired, Message: "verification code expired"}
	ErrInvalidCode       = &Error{Code: CodeInvalidCode, Message: "invalid verification code"}
	ErrUnauthorized      = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
)
