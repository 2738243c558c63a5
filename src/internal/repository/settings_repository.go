package repository

import (
	"context"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type SettingsRepository struct {
	DB mysql.DBInterface
}

func NewSettingsRepository(db mysql.DBInterface) *SettingsRepository {
	return &SettingsRepository{
		DB: db,
	}
}

func (r *SettingsRepository) All(ctx context.Context) ([]entity.Setting, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var settings []entity.Setting
	err = db.SelectContext(ctx, &settings, `
		SELECT setting_key, setting_value, description, updated_at
		FROM admin_settings
		ORDER BY setting_key
	`)
	return settings, err
}

func (r *SettingsRepository) Upsert(ctx context.Context, setting entity.Setting) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO admin_settings (setting_key, setting_value, description, updated_at)
		VALUES (?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			setting_value = VALUES(setting_value),
			description = VALUES(description),
			updated_at = NOW()
	`, setting.Key, setting.Value, setting.Description)
	return err
}
