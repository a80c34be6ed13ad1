package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/internal/usecase"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const snapshotContentType = "application/json"

// OrderArchiveRepo хранит снимки отправленных заказов в MinIO.
type OrderArchiveRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewOrderArchiveRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *OrderArchiveRepo {
	return &OrderArchiveRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Save сохраняет снимок заказа в JSON и возвращает ключ объекта.
func (o *OrderArchiveRepo) Save(ctx context.Context, snapshot *usecase.OrderSnapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	info, err := o.mc.PutObject(ctx, o.cfg.BucketName, SnapshotKey(snapshot), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: snapshotContentType,
			UserMetadata: map[string]string{
				"order-number": snapshot.OrderNumber,
			},
		})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет снимок из MinIO по указанному ключу.
func (o *OrderArchiveRepo) Delete(ctx context.Context, key string) error {
	if err := o.mc.RemoveObject(ctx, o.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SnapshotKey — ключ объекта вида orders/2024/05/01/<orderId>.json.
func SnapshotKey(snapshot *usecase.OrderSnapshot) string {
	return fmt.Sprintf("orders/%s/%s.json", snapshot.SentAt.UTC().Format("2006/01/02"), snapshot.OrderID)
}
