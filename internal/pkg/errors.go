package pkg

import (
	"errors"
	"net/http"
)

// 交易码，和前端约定，不可随意改动
const (
	CodeSuccess           = 100
	CodeInvalidRequest    = 101
	CodeInvalidCredential = 102
	CodeUserNotFound      = 103
	CodeOwnerNotFound     = 104
	CodeCommunityNotFound = 110
	CodePostNotFound      = 111
	CodeCommentNotFound   = 112
	CodeNotMember         = 120
	CodeAlreadyMember     = 121
	CodeNotOwner          = 122
	CodeUserOwner         = 123
	CodeAlreadyLiked      = 124
	CodeTooManyRequests   = 429
	CodeInternal          = 500
)

// BizError 业务错误，原样返回给调用方，不重试
type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

var (
	ErrInvalidRequest    = &BizError{Code: CodeInvalidRequest, Msg: "invalid params"}
	ErrInvalidCredential = &BizError{Code: CodeInvalidCredential, Msg: "invalid or expired token"}
	ErrUnknownUser       = &BizError{Code: CodeUserNotFound, Msg: "user not found"}
	ErrOwnerNotFound     = &BizError{Code: CodeOwnerNotFound, Msg: "owner not found"}
	ErrCommunityNotFound = &BizError{Code: CodeCommunityNotFound, Msg: "community not found"}
	ErrPostNotFound      = &BizError{Code: CodePostNotFound, Msg: "post not found"}
	ErrCommentNotFound   = &BizError{Code: CodeCommentNotFound, Msg: "comment not found"}
	ErrNotMember         = &BizError{Code: CodeNotMember, Msg: "user is not a member of the community"}
	ErrAlreadyMember     = &BizError{Code: CodeAlreadyMember, Msg: "user is already a member of the community"}
	ErrNotOwner          = &BizError{Code: CodeNotOwner, Msg: "user is not the owner"}
	ErrIsOwner           = &BizError{Code: CodeUserOwner, Msg: "owner cannot leave the community"}
	ErrAlreadyLiked      = &BizError{Code: CodeAlreadyLiked, Msg: "already liked"}
	ErrTooManyRequests   = &BizError{Code: CodeTooManyRequests, Msg: "rate limit exceeded"}
)

// AsBizError 取出错误链上的业务错误
func AsBizError(err error) (*BizError, bool) {
	var be *BizError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// HTTPStatus 业务码到 HTTP 状态码
func HTTPStatus(err error) int {
	be, ok := AsBizError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch be.Code {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeInvalidCredential, CodeUserNotFound:
		return http.StatusUnauthorized
	case CodeOwnerNotFound, CodeCommunityNotFound, CodePostNotFound, CodeCommentNotFound:
		return http.StatusNotFound
	case CodeNotMember, CodeNotOwner, CodeUserOwner:
		return http.StatusForbidden
	case CodeAlreadyMember, CodeAlreadyLiked:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}
