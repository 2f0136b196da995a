package mysql

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// 数据库连接重试参数
const (
	connectRetries = 3
	connectBackoff = 2 * time.Second
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架
// 2. 启动时最多重试3次、间隔2秒,容忍数据库比应用晚起(容器编排常见)
// 3. 连接池大小由config.Database.PoolSize控制(已在配置层归一化到[1,100])
// 4. 开发环境开启SQL日志,生产环境关闭
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 1. 连接数据库(带重试)
	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= connectRetries; attempt++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logLevel),
			TranslateError: true, // 把MySQL 1062等错误翻译为gorm.ErrDuplicatedKey
		})
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Int("max", connectRetries).
			Msg("连接数据库失败,等待重试")
		if attempt < connectRetries {
			time.Sleep(connectBackoff)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败(已重试%d次): %w", connectRetries, err)
	}

	// 2. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.PoolSize)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 3. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).
		Int("pool_size", cfg.Database.PoolSize).Msg("数据库连接成功")

	// 4. 自动迁移表结构(开发环境)
	// 生产环境应使用版本化迁移脚本,不要依赖AutoMigrate
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意:表名与列名沿用店里旧系统的库表,方便带着历史数据原地升级
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&SaleModel{},
	)
}

// UserModel GORM用户模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/user/entity.go是领域实体,不依赖GORM
// 3. 用户名直接作主键,天然保证唯一
type UserModel struct {
	Username string `gorm:"column:username;primaryKey;size:20;comment:登录名"`
	Password string `gorm:"column:password;size:255;not null;comment:密码(bcrypt加密)"`
}

// TableName 指定表名(沿用旧系统)
func (UserModel) TableName() string {
	return "signup"
}

// BookModel GORM图书模型
// 设计说明:
// 1. Bookid是店员录入的短编号,作业务主键
// 2. 价格使用int64存储最小货币单位(避免浮点数精度问题)
type BookModel struct {
	ID          string `gorm:"column:Bookid;primaryKey;size:10;comment:图书编号"`
	Name        string `gorm:"column:BookName;size:30;not null;comment:书名"`
	Genre       string `gorm:"column:Genre;size:20;comment:分类"`
	Quantity    int    `gorm:"column:Quantity;not null;default:0;comment:在库数量"`
	Author      string `gorm:"column:Author;size:20;comment:作者"`
	Publication string `gorm:"column:Publication;size:30;comment:出版社"`
	Price       int64  `gorm:"column:Price;not null;comment:单价(最小货币单位)"`
}

// TableName 指定表名(沿用旧系统)
func (BookModel) TableName() string {
	return "Available_Books"
}

// SaleModel GORM销售明细模型
// 设计说明:
// 1. 同一笔交易的多行共享TransactionID,查询时按它分组还原交易
// 2. BookName和Price是成交时的快照,图书改价不影响历史账目
// 3. BookID用指针:图书被删除后外键置空(SET NULL),账目保留
type SaleModel struct {
	ID            uint       `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionID string     `gorm:"column:transaction_id;size:50;index;not null;comment:交易号"`
	CustomerName  string     `gorm:"column:CustomerName;size:20;not null;comment:顾客姓名"`
	PhoneNumber   string     `gorm:"column:PhoneNumber;type:char(10);not null;comment:手机号"`
	BookID        *string    `gorm:"column:Bookid;size:10;comment:图书编号"`
	Book          *BookModel `gorm:"foreignKey:BookID;references:ID;constraint:OnDelete:SET NULL"`
	BookName      string     `gorm:"column:BookName;size:30;not null;comment:成交时书名快照"`
	Quantity      int        `gorm:"column:Quantity;not null;comment:数量"`
	Price         int64      `gorm:"column:Price;not null;comment:成交时单价快照"`
	SaleDate      time.Time  `gorm:"column:SaleDate;autoCreateTime;comment:成交时间"`
}

// TableName 指定表名(沿用旧系统)
func (SaleModel) TableName() string {
	return "Sales"
}
