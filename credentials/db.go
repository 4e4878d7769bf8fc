package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProviderCredential 是 provider_credentials 表的一行.
type ProviderCredential struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Provider  string    `gorm:"size:64;not null;uniqueIndex" json:"provider"`
	APIKey    string    `gorm:"size:500;not null" json:"-"`
	BaseURL   string    `gorm:"size:255" json:"base_url"`
	Enabled   bool      `gorm:"not null" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名.
func (ProviderCredential) TableName() string { return "provider_credentials" }

// DBStore 将凭据保存在关系型数据库中, 支持轮换与停用而无需重启.
type DBStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDBStore 创建数据库凭据存储.
func NewDBStore(db *gorm.DB, logger *zap.Logger) *DBStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBStore{db: db, logger: logger.With(zap.String("component", "credentials"))}
}

// Migrate 创建或更新 provider_credentials 表.
func (s *DBStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&ProviderCredential{}); err != nil {
		return fmt.Errorf("migrate provider_credentials: %w", err)
	}
	return nil
}

// Resolve 实现 Store. 只返回启用状态的凭据.
func (s *DBStore) Resolve(ctx context.Context, provider string) (Credential, error) {
	var row ProviderCredential
	err := s.db.WithContext(ctx).
		Where("provider = ? AND enabled = ?", normalize(provider), true).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Credential{}, fmt.Errorf("%w: %s", ErrNotFound, provider)
	}
	if err != nil {
		return Credential{}, fmt.Errorf("resolve credentials for %s: %w", provider, err)
	}
	return Credential{Provider: row.Provider, APIKey: row.APIKey, BaseURL: row.BaseURL}, nil
}

// Upsert 写入或轮换凭据, 并重新启用.
func (s *DBStore) Upsert(ctx context.Context, c Credential) error {
	if normalize(c.Provider) == "" || c.APIKey == "" {
		return errors.New("credentials: provider and api key are required")
	}
	row := ProviderCredential{
		Provider: normalize(c.Provider),
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Enabled:  true,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"api_key", "base_url", "enabled", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert credentials for %s: %w", c.Provider, err)
	}
	s.logger.Info("credentials stored", zap.String("provider", row.Provider), zap.String("api_key", Mask(c.APIKey)))
	return nil
}

// Disable 停用凭据. 不存在时返回 ErrNotFound.
func (s *DBStore) Disable(ctx context.Context, provider string) error {
	res := s.db.WithContext(ctx).
		Model(&ProviderCredential{}).
		Where("provider = ?", normalize(provider)).
		Update("enabled", false)
	if res.Error != nil {
		return fmt.Errorf("disable credentials for %s: %w", provider, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, provider)
	}
	s.logger.Info("credentials disabled", zap.String("provider", normalize(provider)))
	return nil
}
