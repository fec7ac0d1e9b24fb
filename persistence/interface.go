// persistence/interface.go
package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/wfunc/songquiz/models"
)

// Database 数据库接口
type Database interface {
	SaveGameRecord(record *models.GormGameRecord) error
	LoadGameRecords(guildID string, limit int) ([]models.GormGameRecord, error)
	LoadPlayerStats(userID string) (*models.GormPlayerStats, error)
	// UpdatePlayerStats 在事务中读取(不存在则新建)、修改并保存玩家统计
	UpdatePlayerStats(userID string, fn func(stats *models.GormPlayerStats) error) error
	Transaction(fn func(tx *gorm.DB) error) error
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
