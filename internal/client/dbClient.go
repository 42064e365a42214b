package client

import (
	"log"
	"stablecart-api/internal/model"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDBClient opens MySQL when databaseURL is set, otherwise a local
// SQLite file, and migrates the schema.
func InitDBClient(databaseURL, sqlitePath string) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if databaseURL != "" {
		db, err = gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Product{},
		&model.ProductPrice{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.UserRewards{},
		&model.MysteryBox{},
		&model.ExclusiveDrop{},
		&model.RewardedOrder{},
		&model.Wallet{},
		&model.User{},
		&model.Address{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
