package main

import (
	"note-service/internal/model"
	"note-service/pkg/config"
	"note-service/pkg/database"
	"note-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the demo dataset: two FREE tenants, each with an admin and a
// member, all sharing the password "password".
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Start seeding...")

	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	db := database.GetDB()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password", zap.Error(err))
	}

	tenants := []model.Tenant{
		{Name: "Acme", Slug: "acme", Plan: model.PlanFree},
		{Name: "Globex", Slug: "globex", Plan: model.PlanFree},
	}

	for i := range tenants {
		tenant := &tenants[i]
		if result := db.Where("slug = ?", tenant.Slug).FirstOrCreate(tenant); result.Error != nil {
			log.Fatal("Failed to create tenant", zap.String("slug", tenant.Slug), zap.Error(result.Error))
		}
		log.Info("Tenant ready", zap.String("slug", tenant.Slug), zap.Uint("id", tenant.ID))

		users := []model.User{
			{Email: "admin@" + tenant.Slug + ".test", Password: string(hashed), Role: model.RoleAdmin, TenantID: tenant.ID},
			{Email: "user@" + tenant.Slug + ".test", Password: string(hashed), Role: model.RoleMember, TenantID: tenant.ID},
		}
		for j := range users {
			user := &users[j]
			if result := db.Where("email = ?", user.Email).FirstOrCreate(user); result.Error != nil {
				log.Fatal("Failed to create user", zap.String("email", user.Email), zap.Error(result.Error))
			}
			log.Info("User ready", zap.String("email", user.Email), zap.String("role", user.Role))
		}
	}

	log.Info("Seeding finished.")
}
