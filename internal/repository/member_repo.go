package repository

import (
	"context"

	"github.com/google/uuid"

	"grouple/communityhub/internal/model"
)

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	// ListByGroupExcluding returns members of a group with their user rows,
	// leaving out the caller (nobody needs to see themselves online twice).
	ListByGroupExcluding(ctx context.Context, groupID, excludeUserID uuid.UUID) ([]model.Member, error)
	CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
	Exists(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}
