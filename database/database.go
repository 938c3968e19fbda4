package database

import (
	"fmt"
	"log"

	"budget/config"
	"budget/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the MySQL connection, migrates the schema and seeds the
// default categories.
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Income{},
		&models.Expense{},
		&models.Debt{},
	); err != nil {
		return err
	}

	seedCategories()

	log.Println("database initialized")
	return nil
}

// GetDB returns the database handle.
func GetDB() *gorm.DB {
	return DB
}

// seedCategories inserts the default expense and income categories when the
// table is empty.
func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	// colors match the frontend palette
	colorMap := map[string]string{
		models.CategoryBreakfast:       "#f59e0b",
		models.CategoryLunch:           "#f97316",
		models.CategoryDinner:          "#ef4444",
		models.CategoryShopping:        "#a855f7",
		models.CategoryRent:            "#14b8a6",
		models.CategorySendHome:        "#06b6d4",
		models.CategoryTransport:       "#3b82f6",
		models.CategoryFee:             "#64748b",
		models.CategoryEntertainment:   "#ec4899",
		models.CategoryLongTermSaving:  "#10b981",
		models.CategoryEmergencySaving: "#22c55e",
		models.CategoryInvestment:      "#84cc16",
		models.CategoryDebtPayment:     "#8b5cf6",
		models.CategoryCreditPayment:   "#6366f1",
		models.CategoryAdditional:      "#78716c",
		models.CategorySpecial:         "#eab308",
	}

	var cats []models.Category
	for i, name := range models.DefaultExpenseCategories() {
		color := colorMap[name]
		if color == "" {
			color = "#64748b"
		}
		cats = append(cats, models.Category{
			Name:  name,
			Kind:  models.CategoryKindExpense,
			Sort:  (i + 1) * 10,
			Color: color,
		})
	}
	for i, name := range models.DefaultIncomeCategories() {
		cats = append(cats, models.Category{
			Name:  name,
			Kind:  models.CategoryKindIncome,
			Sort:  (i + 1) * 10,
			Color: "#10b981",
		})
	}
	if len(cats) > 0 {
		_ = DB.Create(&cats).Error
	}
}
