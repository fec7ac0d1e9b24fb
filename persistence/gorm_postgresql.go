// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/wfunc/songquiz/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// 配置GORM日志
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold: time.Second,   // 慢SQL阈值
			LogLevel:      logger.Silent, // 日志级别
			Colorful:      false,         // 禁用彩色打印
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	// 获取通用数据库对象 sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return NewGormDatabase(db)
}

// NewGormDatabase wraps an open connection and migrates the game tables.
func NewGormDatabase(db *gorm.DB) (*GormPostgreSQL, error) {
	if err := autoMigrate(db); err != nil {
		return nil, err
	}
	return &GormPostgreSQL{db: db}, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.GormPlayerStats{},
		&models.GormGameRecord{},
	)
}

// SaveGameRecord 保存游戏记录
func (p *GormPostgreSQL) SaveGameRecord(record *models.GormGameRecord) error {
	if record == nil || record.RecordID == "" {
		return fmt.Errorf("invalid game record")
	}
	return p.db.Create(record).Error
}

// LoadGameRecords 加载公会最近的游戏记录，新的在前
func (p *GormPostgreSQL) LoadGameRecords(guildID string, limit int) ([]models.GormGameRecord, error) {
	var records []models.GormGameRecord
	query := p.db.Where("guild_id = ?", guildID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// LoadPlayerStats 加载玩家统计
func (p *GormPostgreSQL) LoadPlayerStats(userID string) (*models.GormPlayerStats, error) {
	var stats models.GormPlayerStats
	if err := p.db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &stats, nil
}

// UpdatePlayerStats 行锁读取玩家统计，不存在时新建
func (p *GormPostgreSQL) UpdatePlayerStats(userID string, fn func(stats *models.GormPlayerStats) error) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var stats models.GormPlayerStats
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&stats).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = models.GormPlayerStats{UserID: userID, Level: 1}
		} else if err != nil {
			return err
		}

		if err := fn(&stats); err != nil {
			return err
		}
		stats.LastActive = time.Now()
		return tx.Save(&stats).Error
	})
}

// Close 关闭数据库连接
func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// 添加事务支持
func (p *GormPostgreSQL) Transaction(fn func(tx *gorm.DB) error) error {
	return p.db.Transaction(fn)
}

// Gorm 返回底层连接，供同库的歌曲目录读取
func (p *GormPostgreSQL) Gorm() *gorm.DB {
	return p.db
}
