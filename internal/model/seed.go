package model

import (
	"context"
	"errors"
	"journal/internal/entity/db"
	"journal/internal/utils"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SeedDefaultTags ensures a tag exists for each name. Existing tags are left untouched.
func SeedDefaultTags(ctx context.Context, repo Repository, names []string) error {
	if repo == nil {
		return nil
	}

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		_, err := repo.FindTagByName(ctx, name)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrNotFound):
			if err := createSeedTag(ctx, repo, name); err != nil {
				return err
			}
		default:
			return err
		}
	}
	return nil
}

func createSeedTag(ctx context.Context, repo Repository, name string) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	tag := db.Tag{
		ID:        utils.NewID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := repo.CreateTag(ctx, &tag)
	if errors.Is(err, ErrDuplicate) {
		// 并发启动时另一实例已创建
		return nil
	}
	if err != nil {
		return err
	}
	logrus.WithField("tag", name).Info("seeded tag")
	return nil
}
