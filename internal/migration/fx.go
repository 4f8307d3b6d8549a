package migration

import (
	authdomain "github.com/stagelink/stagelink/internal/auth/domain"
	availdomain "github.com/stagelink/stagelink/internal/availability/domain"
	billingdomain "github.com/stagelink/stagelink/internal/billing/domain"
	bookingdomain "github.com/stagelink/stagelink/internal/booking/domain"
	"github.com/stagelink/stagelink/internal/config"
	performerdomain "github.com/stagelink/stagelink/internal/performer/domain"
	reviewdomain "github.com/stagelink/stagelink/internal/review/domain"
	"github.com/stagelink/stagelink/internal/seed"
	venuedomain "github.com/stagelink/stagelink/internal/venue/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, repo billingdomain.Repository) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// SQLite and MySQL installs (dev, embedded) take the schema
			// from the models instead of the SQL migration files.
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&venuedomain.Venue{},
				&performerdomain.Performer{},
				&availdomain.Slot{},
				&bookingdomain.Booking{},
				&reviewdomain.Review{},
				&billingdomain.Plan{},
				&billingdomain.VenueSubscription{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultPlans(conn, repo)
	}),
)
