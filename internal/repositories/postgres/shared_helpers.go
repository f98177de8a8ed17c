package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pensacomp/lms-service/internal/repositories"
)

// handleDBError maps gorm errors onto the repository sentinel errors.
func handleDBError(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.ErrDuplicate
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// applyPagination applies limit/offset when set.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
