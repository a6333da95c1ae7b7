package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"marketbook/internal/model"
)

// GetShop returns one shop by id.
func (db *DB) GetShop(ctx context.Context, id string) (*model.Shop, error) {
	var s model.Shop
	err := db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, open_time_24, close_time_24, created_at, updated_at
		FROM shops WHERE id = ?`, id,
	).Scan(&s.ID, &s.OwnerID, &s.Name, &s.OpenTime24, &s.CloseTime24, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shop %s: %w", id, err)
	}
	return &s, nil
}

// UpsertShop creates or updates a shop record.
func (db *DB) UpsertShop(ctx context.Context, s *model.Shop) error {
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO shops (id, owner_id, name, open_time_24, close_time_24, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			name = excluded.name,
			open_time_24 = excluded.open_time_24,
			close_time_24 = excluded.close_time_24,
			updated_at = excluded.updated_at`,
		s.ID, s.OwnerID, s.Name, s.OpenTime24, s.CloseTime24, now, now)
	if err != nil {
		return fmt.Errorf("upsert shop: %w", err)
	}
	return nil
}

// GetService returns one service by id.
func (db *DB) GetService(ctx context.Context, id string) (*model.Service, error) {
	var s model.Service
	var multiDay int
	err := db.QueryRowContext(ctx, `
		SELECT id, shop_id, name, price, estimated_duration, allows_multi_day, created_at, updated_at
		FROM services WHERE id = ?`, id,
	).Scan(&s.ID, &s.ShopID, &s.Name, &s.Price, &s.EstimatedDuration, &multiDay, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service %s: %w", id, err)
	}
	s.AllowsMultiDayBooking = multiDay != 0
	return &s, nil
}

// UpsertService creates or updates a service record.
func (db *DB) UpsertService(ctx context.Context, s *model.Service) error {
	multiDay := 0
	if s.AllowsMultiDayBooking {
		multiDay = 1
	}
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO services (id, shop_id, name, price, estimated_duration, allows_multi_day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			shop_id = excluded.shop_id,
			name = excluded.name,
			price = excluded.price,
			estimated_duration = excluded.estimated_duration,
			allows_multi_day = excluded.allows_multi_day,
			updated_at = excluded.updated_at`,
		s.ID, s.ShopID, s.Name, s.Price, s.EstimatedDuration, multiDay, now, now)
	if err != nil {
		return fmt.Errorf("upsert service: %w", err)
	}
	return nil
}

// ListServicesForShop returns a shop's services ordered by name.
func (db *DB) ListServicesForShop(ctx context.Context, shopID string) ([]model.Service, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, shop_id, name, price, estimated_duration, allows_multi_day, created_at, updated_at
		FROM services WHERE shop_id = ? ORDER BY name`, shopID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		var multiDay int
		if err := rows.Scan(&s.ID, &s.ShopID, &s.Name, &s.Price, &s.EstimatedDuration, &multiDay, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		s.AllowsMultiDayBooking = multiDay != 0
		services = append(services, s)
	}
	return services, rows.Err()
}
