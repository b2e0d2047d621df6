package main

import (
	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	plans := []models.PricingPlan{
		{
			Name:        "پنل برنزی",
			Description: "مناسب کسب‌وکارهای کوچک",
			SmsCount:    1000,
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(390000)),
			Features:    models.StringList{"ارسال پیامک تکی و گروهی", "گزارش تحویل", "پشتیبانی ایمیلی"},
			IsActive:    true,
			SortOrder:   1,
		},
		{
			Name:        "پنل نقره‌ای",
			Description: "پرفروش‌ترین پلن",
			SmsCount:    5000,
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(1690000)),
			Features:    models.StringList{"همه امکانات پلن برنزی", "ارسال زمان‌بندی شده", "خطوط اختصاصی"},
			IsPopular:   true,
			IsActive:    true,
			SortOrder:   2,
		},
		{
			Name:        "پنل طلایی",
			Description: "برای ارسال‌های سازمانی",
			SmsCount:    20000,
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(5900000)),
			Features:    models.StringList{"همه امکانات پلن نقره‌ای", "وب‌سرویس ارسال", "مدیر حساب اختصاصی"},
			IsActive:    true,
			SortOrder:   3,
		},
	}

	for _, plan := range plans {
		var existing models.PricingPlan
		if err := models.DB.Where("name = ?", plan.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&plan).Error; err != nil {
				stdLog.Printf("Failed to create pricing plan %s: %v", plan.Name, err)
			} else {
				stdLog.Printf("Created pricing plan: %s", plan.Name)
			}
		} else {
			stdLog.Printf("Pricing plan already exists: %s", plan.Name)
		}
	}

	announcement := models.Announcement{
		Title:    "تخفیف افتتاحیه",
		Body:     "تا پایان ماه، شارژ اولیه همه پنل‌ها با ۲۰٪ تخفیف",
		IsActive: true,
	}
	var existing models.Announcement
	if err := models.DB.Where("title = ?", announcement.Title).First(&existing).Error; err != nil {
		if err := models.DB.Create(&announcement).Error; err != nil {
			stdLog.Printf("Failed to create announcement: %v", err)
		} else {
			stdLog.Printf("Created announcement: %s", announcement.Title)
		}
	} else {
		stdLog.Printf("Announcement already exists: %s", announcement.Title)
	}

	stdLog.Printf("Seed finished")
}
