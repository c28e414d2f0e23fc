package metric

import (
	"context"
	"time"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/utils"
)

func database(as *utils.AppState) (time.Duration, error) {
	start := time.Now()
	if _, err := as.BunDB.NewSelect().
		Model((*model.Event)(nil)).
		Where("id = ?", "").
		Exists(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
