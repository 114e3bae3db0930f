package migration

import (
	"fmt"
	"log"

	"tastebook/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeImage{}); err != nil {
		log.Fatalf("Error migrating recipe image database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Review{}); err != nil {
		log.Fatalf("Error migrating review database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Keyword{}); err != nil {
		log.Fatalf("Error migrating keyword database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeKeyword{}); err != nil {
		log.Fatalf("Error migrating recipe keyword database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Favorite{}); err != nil {
		log.Fatalf("Error migrating favorite database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
