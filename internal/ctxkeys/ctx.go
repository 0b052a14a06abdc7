package ctxkeys

import (
	"context"

	"github.com/habitboard/habitboard/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey        contextKey = "user"
	RequestInfoKey contextKey = "request_info"
)

// RequestInfo is filled in by inner middleware and read back by the request
// logger once the handler returns.
type RequestInfo struct {
	UserID string
}

func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	if info := RequestInfoFrom(ctx); info != nil {
		info.UserID = user.ID
	}
	return context.WithValue(ctx, UserKey, user)
}

func RequestInfoFrom(ctx context.Context) *RequestInfo {
	info, _ := ctx.Value(RequestInfoKey).(*RequestInfo)
	return info
}

func WithRequestInfo(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, RequestInfoKey, info)
}
