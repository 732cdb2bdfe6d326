package apperrors

import "errors"

// サービス層が返すドメインエラー。
// コントローラー側で errors.As によりHTTPステータスへ変換する。

// NotFoundError 対象が存在しない（404）
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// BadRequestError 入力値や状態の不正（400）
type BadRequestError struct {
	Msg string
}

func (e *BadRequestError) Error() string { return e.Msg }

// ForbiddenError 権限なし（403）
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

// TokenError トークンの検証失敗・不一致（401）
type TokenError struct {
	Msg string
}

func (e *TokenError) Error() string { return e.Msg }

// NewNotFound NotFoundErrorを作成
func NewNotFound(msg string) error { return &NotFoundError{Msg: msg} }

// NewBadRequest BadRequestErrorを作成
func NewBadRequest(msg string) error { return &BadRequestError{Msg: msg} }

// NewForbidden ForbiddenErrorを作成
func NewForbidden(msg string) error { return &ForbiddenError{Msg: msg} }

// NewToken TokenErrorを作成
func NewToken(msg string) error { return &TokenError{Msg: msg} }

// IsNotFound NotFoundErrorかどうか
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsBadRequest BadRequestErrorかどうか
func IsBadRequest(err error) bool {
	var e *BadRequestError
	return errors.As(err, &e)
}

// IsForbidden ForbiddenErrorかどうか
func IsForbidden(err error) bool {
	var e *ForbiddenError
	return errors.As(err, &e)
}

// IsToken TokenErrorかどうか
func IsToken(err error) bool {
	var e *TokenError
	return errors.As(err, &e)
}
