package service

import (
	"context"
	"time"

	"Buddy_Community/internal/metrics"
	"Buddy_Community/internal/repository/mysql"

	"go.uber.org/zap"
)

type LikeCountStore interface {
	ReconcileList(ctx context.Context, kind mysql.LikeKind, batchSize int, lastID string) ([]mysql.Pair, string, error)
	RealLikes(ctx context.Context, kind mysql.LikeKind, id string) (int64, error)
	Reconcile(ctx context.Context, kind mysql.LikeKind, id string, n int64) error
}

// LikeCountReconciler 定期把 like_count 和点赞关系表对齐
type LikeCountReconciler struct {
	repo      LikeCountStore
	kinds     []mysql.LikeKind
	batchSize int
	interval  time.Duration
	log       *zap.Logger
}

func NewLikeCountReconciler(repo LikeCountStore, interval time.Duration, log *zap.Logger) *LikeCountReconciler {
	return &LikeCountReconciler{
		repo:      repo,
		kinds:     []mysql.LikeKind{mysql.PostLikes, mysql.CommentLikes},
		batchSize: 500,
		interval:  interval,
		log:       log,
	}
}

func (r *LikeCountReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, kind := range r.kinds {
				r.reconcileOnce(ctx, kind)
			}
		}
	}
}

// reconcileOnce 按 id 游标走完一整轮，返回修正的行数
func (r *LikeCountReconciler) reconcileOnce(ctx context.Context, kind mysql.LikeKind) int {
	fixed := 0
	lastID := ""
	for ctx.Err() == nil {
		list, next, err := r.repo.ReconcileList(ctx, kind, r.batchSize, lastID)
		if err != nil {
			r.log.Error("reconcile list failed", zap.String("kind", kind.Name), zap.Error(err))
			return fixed
		}
		if len(list) == 0 {
			return fixed
		}
		for _, row := range list {
			n, err := r.repo.RealLikes(ctx, kind, row.ID)
			if err != nil {
				r.log.Warn("count likes failed", zap.String("kind", kind.Name), zap.String("id", row.ID), zap.Error(err))
				continue
			}
			if n == row.LikeCount {
				continue
			}
			if err = r.repo.Reconcile(ctx, kind, row.ID, n); err != nil {
				r.log.Warn("fix like count failed", zap.String("kind", kind.Name), zap.String("id", row.ID), zap.Error(err))
				continue
			}
			metrics.RecordReconciled(kind.Name)
			fixed++
		}
		lastID = next
	}
	return fixed
}
