package migration

import (
	announcementdomain "github.com/smallbiznis/rationbook/internal/announcement/domain"
	"github.com/smallbiznis/rationbook/internal/config"
	distributiondomain "github.com/smallbiznis/rationbook/internal/distribution/domain"
	familydomain "github.com/smallbiznis/rationbook/internal/family/domain"
	grievancedomain "github.com/smallbiznis/rationbook/internal/grievance/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "sqlite" {
			// Embedded dev database; the SQL migrations target server
			// dialects.
			return conn.AutoMigrate(
				&familydomain.Family{},
				&distributiondomain.Record{},
				&grievancedomain.Grievance{},
				&grievancedomain.Comment{},
				&announcementdomain.Announcement{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB, cfg.DBType)
	}),
)
