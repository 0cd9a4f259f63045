package utils

import (
	"context"
)

type contextKey string

const (
	MemberIDKey   contextKey = "member_id"
	MemberNameKey contextKey = "member_name"
	RequestIDKey  contextKey = "request_id"
)

// SetActorContext stores the authenticated member's identity on the request
// context. Identity is established upstream; this package never infers it.
func SetActorContext(ctx context.Context, memberID int64, memberName string) context.Context {
	ctx = context.WithValue(ctx, MemberIDKey, memberID)
	ctx = context.WithValue(ctx, MemberNameKey, memberName)
	return ctx
}

func GetActorFromContext(ctx context.Context) (int64, string, bool) {
	idVal := ctx.Value(MemberIDKey)
	if idVal == nil {
		return 0, "", false
	}

	memberID, ok := idVal.(int64)
	if !ok || memberID <= 0 {
		return 0, "", false
	}

	memberName, _ := ctx.Value(MemberNameKey).(string)
	return memberID, memberName, true
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	return requestID, ok
}
